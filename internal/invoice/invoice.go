// Package invoice formats completed transactions into the fixed-width
// documents shown on the console and written next to the inventory file.
// Presentation only; no business decisions happen here.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"wecare-system/internal/pricing"
)

// Header identifies the store on every printed document.
type Header struct {
	StoreName string
	Address   string
}

// Billing is the immutable summary of one completed sale.
type Billing struct {
	Reference    string
	Time         time.Time
	CustomerName string
	Phone        string
	Totals       pricing.Totals
}

// RestockSummary is the immutable summary of one completed restock session.
type RestockSummary struct {
	Reference string
	Time      time.Time
	Totals    pricing.Totals
}

// SaleLine is one cart entry resolved against the product table.
// Quantity is the total handed over including free units; Amount charges
// only the billed units at the sale rate.
type SaleLine struct {
	ProductID int
	Name      string
	Brand     string
	Rate      decimal.Decimal
	Quantity  int
	Free      int
	Amount    decimal.Decimal
}

// StockLine is one restock log entry resolved against the product table.
type StockLine struct {
	ProductID int
	Name      string
	Brand     string
	Rate      decimal.Decimal
	Quantity  int
	Supplier  string
	Amount    decimal.Decimal
}
