package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Store StoreConfig
	Files FileConfig
}

// StoreConfig identifies the shop on printed invoices.
type StoreConfig struct {
	Name    string
	Address string
}

// FileConfig locates the inventory table, invoice output and session log.
type FileConfig struct {
	InventoryPath string
	InvoiceDir    string
	LogPath       string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Store: StoreConfig{
			Name:    getEnv("WECARE_STORE_NAME", "WeCare Store"),
			Address: getEnv("WECARE_STORE_ADDRESS", "Samakushi, Kathmandu, Nepal"),
		},
		Files: FileConfig{
			InventoryPath: getEnv("WECARE_INVENTORY_FILE", "inventory.txt"),
			InvoiceDir:    getEnv("WECARE_INVOICE_DIR", "."),
			LogPath:       getEnv("WECARE_LOG_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
