package store

import "github.com/shopspring/decimal"

// Product is one row of the inventory table. IDs are positional: they are
// assigned from 1 in file order at load time and are not written back out.
type Product struct {
	ID       int
	Name     string `validate:"required"`
	Brand    string
	Quantity int `validate:"gte=0"`
	Price    decimal.Decimal
	Origin   string
}

var saleMarkup = decimal.NewFromInt(2)

// SalePrice returns the customer-facing price, always exactly twice the cost.
func (p Product) SalePrice() decimal.Decimal {
	return p.Price.Mul(saleMarkup)
}
