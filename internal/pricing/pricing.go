// Package pricing holds the promotional quantity rule and the cost/VAT
// arithmetic shared by the sales and restock workflows. All functions are
// pure; money is decimal throughout.
package pricing

import "github.com/shopspring/decimal"

// Mode selects how a line amount is costed.
type Mode string

const (
	// ModeSell charges the sale price, exactly twice the unit cost.
	ModeSell Mode = "sell"
	// ModeRestock charges the plain unit cost.
	ModeRestock Mode = "restock"
)

// vatRate is the flat 13% value-added tax applied to every transaction.
var vatRate = decimal.New(13, -2)

var saleMarkup = decimal.NewFromInt(2)

// FreeQuantity returns the promotional bonus: one free unit per three billed.
func FreeQuantity(billed int) int {
	return billed / 3
}

// SplitQuantity returns the free bonus for billed units and the total
// quantity to deduct from stock (billed + free).
func SplitQuantity(billed int) (free, total int) {
	free = FreeQuantity(billed)
	return free, billed + free
}

// MaxBilledWithinStock returns the largest billed quantity whose free bonus
// still fits inside the available stock: floor(stock * 3 / 4).
func MaxBilledWithinStock(stock int) int {
	return stock * 3 / 4
}

// Line is one costed entry of a transaction. Quantity is the billed quantity
// for sales (free units are not charged) and the added quantity for restocks.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals summarises a transaction. VAT may be fractional; it is carried
// exactly and never rounded.
type Totals struct {
	Total      decimal.Decimal
	VAT        decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineAmount costs a single line under the given mode.
func LineAmount(quantity int, unitPrice decimal.Decimal, mode Mode) decimal.Decimal {
	amount := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if mode == ModeSell {
		amount = amount.Mul(saleMarkup)
	}
	return amount
}

// ComputeTotals sums the lines under the given mode and applies VAT.
func ComputeTotals(lines []Line, mode Mode) Totals {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineAmount(l.Quantity, l.UnitPrice, mode))
	}
	vat := total.Mul(vatRate)
	return Totals{
		Total:      total,
		VAT:        vat,
		GrandTotal: total.Add(vat),
	}
}
