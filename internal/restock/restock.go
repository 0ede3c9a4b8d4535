// Package restock runs the interactive purchase workflow: add new products
// or top up existing ones, accumulate a session log, then persist and render
// a restock invoice on exit. Unlike the sales dialogue, a bad entry here
// aborts the specific action instead of re-prompting.
package restock

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wecare-system/internal/cli"
	"wecare-system/internal/invoice"
	"wecare-system/internal/pricing"
	"wecare-system/internal/store"
)

// StockEntry records one add/restock action for the session invoice. It is
// discarded once the invoice is produced.
type StockEntry struct {
	ProductID int
	Quantity  int
	Supplier  string
}

// Session owns one restocking visit to the inventory.
type Session struct {
	inv      *store.Inventory
	prompt   *cli.Prompter
	renderer *invoice.Renderer
	logger   *slog.Logger

	log []StockEntry
}

func NewSession(inv *store.Inventory, prompt *cli.Prompter, renderer *invoice.Renderer, logger *slog.Logger) *Session {
	return &Session{inv: inv, prompt: prompt, renderer: renderer, logger: logger}
}

// Run loops the restock menu until the operator finalizes. Only exhausted
// console input is returned as an error.
func (s *Session) Run() error {
	for {
		s.prompt.Printf("%s", invoice.InventoryTable(s.inv.Products(), pricing.ModeRestock))

		s.prompt.Println("\nDo you wish to add a product to the inventory or restock?")
		s.prompt.Println("1. Add new products")
		s.prompt.Println("2. Restock product")
		s.prompt.Println("3. Create invoice and exit to menu")
		choice, err := s.prompt.ReadChoice("\nEnter choice: ", 1, 2, 3)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = s.addProduct()
		case 2:
			err = s.restockExisting()
		case 3:
			return s.finalize()
		}
		if err != nil {
			if errors.Is(err, cli.ErrInvalidInput) {
				s.prompt.Println("Invalid input. The action was aborted, please try again.")
				continue
			}
			return err
		}
	}
}

// addProduct collects a full product record and inserts it with the next
// free ID (max+1; gaps are never reused). All reads happen before any
// mutation so an aborted action leaves the table untouched.
func (s *Session) addProduct() error {
	s.prompt.Println("Please fill in the new product details:")
	name, err := s.prompt.ReadLine("Enter the product name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return cli.ErrInvalidInput
	}
	brand, err := s.prompt.ReadLine("Enter the brand name: ")
	if err != nil {
		return err
	}
	supplier, err := s.prompt.ReadLine("Enter the supplier: ")
	if err != nil {
		return err
	}
	qty, err := s.prompt.ReadInt("Enter the initial quantity: ")
	if err != nil {
		return err
	}
	if qty < 0 {
		return cli.ErrInvalidInput
	}
	price, err := s.prompt.ReadDecimal("Enter the cost price: ")
	if err != nil {
		return err
	}
	origin, err := s.prompt.ReadLine("Enter the product origin: ")
	if err != nil {
		return err
	}

	added := s.inv.Add(store.Product{
		Name:     name,
		Brand:    brand,
		Quantity: qty,
		Price:    price,
		Origin:   origin,
	})
	s.log = append(s.log, StockEntry{ProductID: added.ID, Quantity: qty, Supplier: supplier})
	s.prompt.Printf("Product added with ID %d.\n", added.ID)
	return nil
}

// restockExisting tops up an existing product. An unknown ID is re-asked;
// malformed numeric input aborts the action without side effects.
func (s *Session) restockExisting() error {
	for {
		id, err := s.prompt.ReadInt("Enter the ID of the product to restock: ")
		if err != nil {
			return err
		}
		p, err := s.inv.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				s.prompt.Println("ID does not exist in the inventory. Please try again.")
				continue
			}
			return err
		}

		supplier, err := s.prompt.ReadLine("Enter the supplier: ")
		if err != nil {
			return err
		}
		qty, err := s.prompt.ReadInt("Enter the quantity to restock: ")
		if err != nil {
			return err
		}
		if qty < 1 {
			s.prompt.Println("The quantity must be positive.")
			continue
		}

		if err := s.inv.Adjust(id, qty); err != nil {
			return err
		}
		s.log = append(s.log, StockEntry{ProductID: id, Quantity: qty, Supplier: supplier})
		s.prompt.Printf("Product %s restocked.\n", p.Name)
		return nil
	}
}

// finalize persists the table and renders the session invoice. An empty log
// produces no invoice at all.
func (s *Session) finalize() error {
	if len(s.log) == 0 {
		s.prompt.Println("No restocking occurred.")
		return nil
	}

	if err := s.inv.Save(); err != nil {
		s.prompt.Println("Warning: the inventory file could not be updated. The session continues with the in-memory table.")
		s.logger.Error("inventory save failed", "error", err)
	} else {
		s.prompt.Println("Inventory file updated.")
	}

	lines, totals := s.stockLines()
	summary := invoice.RestockSummary{
		Reference: uuid.NewString(),
		Time:      time.Now(),
		Totals:    totals,
	}

	doc := s.renderer.RestockDocument(summary, lines)
	s.prompt.Printf("%s", doc)
	if _, err := s.renderer.WriteFile(doc, summary.Time); err != nil {
		s.prompt.Println("Warning: the invoice file could not be written.")
		s.logger.Error("invoice write failed", "error", err)
	} else {
		s.prompt.Println("Invoice file created.")
	}

	s.logger.Info("restock completed",
		"reference", summary.Reference,
		"entries", len(s.log),
		"grand_total", totals.GrandTotal.String(),
	)
	s.log = nil
	return nil
}

// stockLines resolves the restock log against the table in action order.
func (s *Session) stockLines() ([]invoice.StockLine, pricing.Totals) {
	lines := make([]invoice.StockLine, 0, len(s.log))
	priced := make([]pricing.Line, 0, len(s.log))
	for _, entry := range s.log {
		p, err := s.inv.Get(entry.ProductID)
		if err != nil {
			continue
		}
		lines = append(lines, invoice.StockLine{
			ProductID: entry.ProductID,
			Name:      p.Name,
			Brand:     p.Brand,
			Rate:      p.Price,
			Quantity:  entry.Quantity,
			Supplier:  entry.Supplier,
			Amount:    pricing.LineAmount(entry.Quantity, p.Price, pricing.ModeRestock),
		})
		priced = append(priced, pricing.Line{Quantity: entry.Quantity, UnitPrice: p.Price})
	}
	return lines, pricing.ComputeTotals(priced, pricing.ModeRestock)
}
