package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"wecare-system/config"
	"wecare-system/internal/cli"
	"wecare-system/internal/invoice"
	"wecare-system/internal/pos"
	"wecare-system/internal/restock"
	"wecare-system/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	logger, closeLog, err := newLogger(cfg.Files.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	inv, err := store.Load(cfg.Files.InventoryPath)
	if err != nil {
		logger.Error("startup failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("inventory loaded", "path", cfg.Files.InventoryPath, "products", inv.Len())

	prompt := cli.NewPrompter(os.Stdin, os.Stdout)
	renderer := invoice.NewRenderer(invoice.Header{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
	}, cfg.Files.InvoiceDir, logger)

	if err := run(inv, prompt, renderer, logger); err != nil && !errors.Is(err, io.EOF) {
		logger.Error("session ended with error", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run drives the main menu until the operator exits or the console closes.
func run(inv *store.Inventory, prompt *cli.Prompter, renderer *invoice.Renderer, logger *slog.Logger) error {
	for {
		prompt.Println("\n\nWelcome to the system.")
		prompt.Println("What action do you wish to perform?")
		prompt.Println("1: Product sales")
		prompt.Println("2: Product purchase/restock")
		prompt.Println("3: Exit")

		choice, err := prompt.ReadChoice("\nEnter a choice: ", 1, 2, 3)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			if err := pos.NewSession(inv, prompt, renderer, logger).Run(); err != nil {
				return err
			}
			prompt.Println("Exiting to the main menu.")
		case 2:
			if err := restock.NewSession(inv, prompt, renderer, logger).Run(); err != nil {
				return err
			}
			prompt.Println("Exiting to the main menu.")
		case 3:
			prompt.Println("System closed. Thank you!")
			return nil
		}
	}
}

// newLogger writes the session log to the configured file, or to stderr when
// no file is set so the console UI on stdout stays clean.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { _ = f.Close() }, nil
}
