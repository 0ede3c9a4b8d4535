// Package pos runs the interactive sales workflow: build a cart against the
// inventory table, reserve stock as entries are accepted, then either check
// out (persist, bill, invoice) or abandon and roll every reservation back.
package pos

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wecare-system/internal/cli"
	"wecare-system/internal/invoice"
	"wecare-system/internal/pricing"
	"wecare-system/internal/store"
)

// CartEntry reserves stock for one product. Re-selecting the product
// replaces the entry rather than adding to it.
type CartEntry struct {
	ProductID int
	Billed    int
	Free      int
	Total     int
}

// Session owns one sale from first selection to checkout or cancellation.
type Session struct {
	inv      *store.Inventory
	prompt   *cli.Prompter
	renderer *invoice.Renderer
	logger   *slog.Logger

	cart  map[int]CartEntry
	order []int
}

func NewSession(inv *store.Inventory, prompt *cli.Prompter, renderer *invoice.Renderer, logger *slog.Logger) *Session {
	return &Session{
		inv:      inv,
		prompt:   prompt,
		renderer: renderer,
		logger:   logger,
		cart:     make(map[int]CartEntry),
	}
}

// Run drives the sale to completion or cancellation. It returns an error
// only when the console input is exhausted or a reservation cannot be
// restored; bad entries are re-prompted indefinitely.
func (s *Session) Run() error {
	for {
		s.prompt.Printf("%s", invoice.InventoryTable(s.inv.Products(), pricing.ModeSell))

		id, err := s.selectProduct()
		if err != nil {
			return err
		}
		entry, err := s.selectQuantity(id)
		if err != nil {
			return err
		}
		if err := s.inv.Adjust(id, -entry.Total); err != nil {
			return err
		}
		s.addToCart(entry)

		p, err := s.inv.Get(id)
		if err != nil {
			return err
		}
		s.prompt.Printf("\n\n%d of %s added to cart.\n", entry.Total, p.Name)
		s.prompt.Printf("Quantity billed: %d\n", entry.Billed)
		s.prompt.Printf("Additional free quantity: %d\n", entry.Free)

		more, err := s.prompt.ReadYesNo("Do you wish to sell more items?")
		if err != nil {
			return err
		}
		if more {
			continue
		}

		done, err := s.reviewAndCheckout()
		if err != nil || done {
			return err
		}
	}
}

// selectProduct asks for a product ID until one from the table is entered.
// If the product is already in the cart its previous reservation is returned
// to stock first, so only the newly chosen quantity ends up deducted.
func (s *Session) selectProduct() (int, error) {
	for {
		id, err := s.prompt.ReadIntRetry("\nPlease enter the product ID to sell: ")
		if err != nil {
			return 0, err
		}
		p, err := s.inv.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				s.prompt.Println("Please enter a valid ID from the inventory.")
				continue
			}
			return 0, err
		}

		if prev, ok := s.cart[id]; ok {
			s.prompt.Printf("Note: %s was already in the cart. The previous quantity will be replaced.\n", p.Name)
			if err := s.inv.Adjust(id, prev.Total); err != nil {
				return 0, err
			}
			s.removeFromCart(id)
			s.prompt.Printf("The sellable quantity for %s is back to %d.\n", p.Name, p.Quantity)
		}
		return id, nil
	}
}

// selectQuantity asks for a billed quantity until it and its free bonus fit
// within the available stock.
func (s *Session) selectQuantity(id int) (CartEntry, error) {
	for {
		p, err := s.inv.Get(id)
		if err != nil {
			return CartEntry{}, err
		}
		qty, err := s.prompt.ReadIntRetry(fmt.Sprintf("\nPlease enter the quantity of %s to sell: ", p.Name))
		if err != nil {
			return CartEntry{}, err
		}
		if qty < 1 {
			s.prompt.Println("\nThe quantity must be at least 1.")
			continue
		}
		if qty > p.Quantity {
			s.prompt.Printf("\nThe product quantity in inventory is not sufficient.\nAvailable stock: %d\n", p.Quantity)
			continue
		}
		free, total := pricing.SplitQuantity(qty)
		if total > p.Quantity {
			s.prompt.Printf("\nThe product quantity in inventory is not sufficient for free items.\nAvailable stock: %d\n", p.Quantity)
			s.prompt.Printf("[Note: %d is the maximum base quantity that can be sold to include free items]\n", pricing.MaxBilledWithinStock(p.Quantity))
			continue
		}
		return CartEntry{ProductID: id, Billed: qty, Free: free, Total: total}, nil
	}
}

// reviewAndCheckout shows the cart and finalizes or unwinds the sale.
// It reports done=false when the operator chooses to keep selling.
func (s *Session) reviewAndCheckout() (bool, error) {
	lines, totals := s.cartLines()
	s.prompt.Printf("%s", invoice.CartTable(lines, totals))

	checkout, err := s.prompt.ReadYesNo("Does the customer wish to checkout now?")
	if err != nil {
		return false, err
	}
	if checkout {
		return true, s.finalize(lines, totals)
	}

	s.prompt.Println("Do you wish to continue selling or exit?")
	s.prompt.Println("1. Continue the sales")
	s.prompt.Println("2. Exit")
	choice, err := s.prompt.ReadChoice("Enter an option: ", 1, 2)
	if err != nil {
		return false, err
	}
	if choice == 1 {
		return false, nil
	}
	if err := s.rollback(); err != nil {
		return false, err
	}
	s.prompt.Println("Sale cancelled. Reserved quantities were returned to the inventory.")
	s.logger.Info("sale abandoned", "items", len(s.order))
	return true, nil
}

// finalize collects the customer details, checkpoints the inventory file and
// produces the invoice. A failed save is reported and the sale still
// completes against the in-memory table.
func (s *Session) finalize(lines []invoice.SaleLine, totals pricing.Totals) error {
	s.prompt.Println("\nPlease fill out the customer details:")
	name, err := s.prompt.ReadLine("Enter the name: ")
	if err != nil {
		return err
	}
	phone, err := s.prompt.ReadPhone("Enter the phone number: ")
	if err != nil {
		return err
	}

	billing := invoice.Billing{
		Reference:    uuid.NewString(),
		Time:         time.Now(),
		CustomerName: name,
		Phone:        phone,
		Totals:       totals,
	}

	if err := s.inv.Save(); err != nil {
		s.prompt.Println("Warning: the inventory file could not be updated. The session continues with the in-memory table.")
		s.logger.Error("inventory save failed", "error", err)
	} else {
		s.prompt.Println("Inventory file updated.")
	}

	doc := s.renderer.SaleDocument(billing, lines)
	s.prompt.Printf("%s", doc)
	if _, err := s.renderer.WriteFile(doc, billing.Time); err != nil {
		s.prompt.Println("Warning: the invoice file could not be written.")
		s.logger.Error("invoice write failed", "error", err)
	} else {
		s.prompt.Println("Invoice file has been created.")
	}

	s.logger.Info("sale completed",
		"reference", billing.Reference,
		"items", len(lines),
		"grand_total", totals.GrandTotal.String(),
	)
	return nil
}

// rollback restores every reservation, leaving the table at pre-sale levels.
func (s *Session) rollback() error {
	for _, id := range s.order {
		if err := s.inv.Adjust(id, s.cart[id].Total); err != nil {
			return err
		}
	}
	s.cart = make(map[int]CartEntry)
	s.order = nil
	return nil
}

func (s *Session) addToCart(entry CartEntry) {
	if _, ok := s.cart[entry.ProductID]; !ok {
		s.order = append(s.order, entry.ProductID)
	}
	s.cart[entry.ProductID] = entry
}

func (s *Session) removeFromCart(id int) {
	delete(s.cart, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// cartLines resolves the cart against the table in the order items were
// added and computes the session totals.
func (s *Session) cartLines() ([]invoice.SaleLine, pricing.Totals) {
	lines := make([]invoice.SaleLine, 0, len(s.order))
	priced := make([]pricing.Line, 0, len(s.order))
	for _, id := range s.order {
		entry := s.cart[id]
		p, err := s.inv.Get(id)
		if err != nil {
			continue
		}
		lines = append(lines, invoice.SaleLine{
			ProductID: id,
			Name:      p.Name,
			Brand:     p.Brand,
			Rate:      p.SalePrice(),
			Quantity:  entry.Total,
			Free:      entry.Free,
			Amount:    pricing.LineAmount(entry.Billed, p.Price, pricing.ModeSell),
		})
		priced = append(priced, pricing.Line{Quantity: entry.Billed, UnitPrice: p.Price})
	}
	return lines, pricing.ComputeTotals(priced, pricing.ModeSell)
}
