// Package store owns the authoritative in-memory product table and its
// flat-file persistence. The file format is one record per line with fields
// name,brand,quantity,price,origin joined by plain commas. There is no
// escaping: a field value containing a comma corrupts its record on save.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	// ErrInventoryFileMissing means the table cannot be loaded at startup.
	ErrInventoryFileMissing = errors.New("store: inventory file missing")
	// ErrProductNotFound indicates an unknown product ID.
	ErrProductNotFound = errors.New("store: product not found")
	// ErrInsufficientStock is returned when a deduction would drive
	// quantity-on-hand below zero.
	ErrInsufficientStock = errors.New("store: insufficient stock")
)

const fieldsPerRecord = 5

// Inventory holds the product table for the process lifetime. The loaded
// file is rewritten wholesale on each Save; between saves the in-memory
// state is the source of truth.
type Inventory struct {
	path     string
	products map[int]*Product
	validate *validator.Validate
}

// Load reads the persisted table and assigns sequential IDs starting at 1.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInventoryFileMissing, path)
		}
		return nil, fmt.Errorf("store: read inventory: %w", err)
	}

	inv := &Inventory{
		path:     path,
		products: make(map[int]*Product),
		validate: validator.New(),
	}

	id := 1
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := inv.parseRecord(id, line)
		if err != nil {
			return nil, fmt.Errorf("store: line %d: %w", i+1, err)
		}
		inv.products[id] = p
		id++
	}
	return inv, nil
}

func (inv *Inventory) parseRecord(id int, line string) (*Product, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldsPerRecord {
		return nil, fmt.Errorf("expected %d fields, got %d", fieldsPerRecord, len(fields))
	}
	qty, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("quantity %q is not an integer", fields[2])
	}
	price, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, fmt.Errorf("price %q is not a number", fields[3])
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price %s is negative", price)
	}
	p := &Product{
		ID:       id,
		Name:     strings.TrimSpace(fields[0]),
		Brand:    strings.TrimSpace(fields[1]),
		Quantity: qty,
		Price:    price,
		Origin:   strings.TrimSpace(fields[4]),
	}
	if err := inv.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}
	return p, nil
}

// Save rewrites the whole table in ID order. A failure leaves the in-memory
// table authoritative for the rest of the session; callers report it and
// carry on.
func (inv *Inventory) Save() error {
	var b strings.Builder
	for _, p := range inv.Products() {
		record := strings.Join([]string{
			p.Name,
			p.Brand,
			strconv.Itoa(p.Quantity),
			p.Price.String(),
			p.Origin,
		}, ",")
		b.WriteString(record)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(inv.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("store: save inventory: %w", err)
	}
	return nil
}

// Get returns the product for id.
func (inv *Inventory) Get(id int) (*Product, error) {
	p, ok := inv.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return p, nil
}

// Products returns the table in ascending ID order.
func (inv *Inventory) Products() []*Product {
	out := make([]*Product, 0, len(inv.products))
	for _, p := range inv.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextID returns one greater than the current maximum ID. Gaps below the
// maximum are never reused.
func (inv *Inventory) NextID() int {
	next := 1
	for id := range inv.products {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Add assigns the next ID to p and inserts it into the table.
func (inv *Inventory) Add(p Product) *Product {
	p.ID = inv.NextID()
	stored := p
	inv.products[stored.ID] = &stored
	return &stored
}

// Adjust changes quantity-on-hand by delta. A negative delta that would
// leave the quantity below zero fails with ErrInsufficientStock and leaves
// the product untouched.
func (inv *Inventory) Adjust(id, delta int) error {
	p, err := inv.Get(id)
	if err != nil {
		return err
	}
	if p.Quantity+delta < 0 {
		return fmt.Errorf("%w: product %d has %d, requested %d", ErrInsufficientStock, id, p.Quantity, -delta)
	}
	p.Quantity += delta
	return nil
}

// Len reports the number of products in the table.
func (inv *Inventory) Len() int {
	return len(inv.products)
}

// Path returns the backing file location.
func (inv *Inventory) Path() string {
	return inv.path
}
