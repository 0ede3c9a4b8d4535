package invoice

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wecare-system/internal/pricing"
	"wecare-system/internal/store"
)

// timeLayout matches the timestamp printed on documents and embedded in
// invoice file names.
const timeLayout = "2006-01-02 15:04:05.000000"

const lineWidth = 80

// Renderer builds transaction documents and writes them to the configured
// invoice directory.
type Renderer struct {
	header Header
	dir    string
	logger *slog.Logger
}

func NewRenderer(header Header, dir string, logger *slog.Logger) *Renderer {
	return &Renderer{header: header, dir: dir, logger: logger}
}

// FileName derives an invoice file name from the transaction timestamp,
// with colons stripped.
func FileName(t time.Time) string {
	return strings.ReplaceAll(t.Format(timeLayout), ":", "") + ".txt"
}

// SaleDocument renders a customer invoice.
func (r *Renderer) SaleDocument(b Billing, lines []SaleLine) string {
	var sb strings.Builder
	r.writeTitle(&sb, "CUSTOMER INVOICE", b.Reference, b.Time)
	sb.WriteString("Name: " + b.CustomerName + "\n")
	sb.WriteString("Phone no.: " + b.Phone + "\n")
	writeRule(&sb)
	sb.WriteString(pad("ID", 8) + pad("Name", 19) + pad("Brand", 15) + pad("Price", 12) +
		pad("Quantity", 12) + pad("Free", 9) + pad("Total", 15) + "\n")
	writeRule(&sb)
	for _, l := range lines {
		sb.WriteString(pad(strconv.Itoa(l.ProductID), 8))
		sb.WriteString(pad(l.Name, 19))
		sb.WriteString(pad(l.Brand, 15))
		sb.WriteString(pad(l.Rate.String(), 12))
		sb.WriteString(pad(strconv.Itoa(l.Quantity), 12))
		sb.WriteString(pad(strconv.Itoa(l.Free), 9))
		sb.WriteString(pad(l.Amount.String(), 15))
		sb.WriteByte('\n')
	}
	r.writeFooter(&sb, b.Totals)
	return sb.String()
}

// RestockDocument renders a restock invoice.
func (r *Renderer) RestockDocument(s RestockSummary, lines []StockLine) string {
	var sb strings.Builder
	r.writeTitle(&sb, "RESTOCK INVOICE", s.Reference, s.Time)
	writeRule(&sb)
	sb.WriteString(pad("ID", 6) + pad("Name", 16) + pad("Brand", 15) + pad("Price", 12) +
		pad("Quantity", 12) + pad("Supplier", 13) + pad("Total", 15) + "\n")
	writeRule(&sb)
	for _, l := range lines {
		sb.WriteString(pad(strconv.Itoa(l.ProductID), 6))
		sb.WriteString(pad(l.Name, 16))
		sb.WriteString(pad(l.Brand, 15))
		sb.WriteString(pad(l.Rate.String(), 12))
		sb.WriteString(pad(strconv.Itoa(l.Quantity), 12))
		sb.WriteString(pad(l.Supplier, 13))
		sb.WriteString(pad(l.Amount.String(), 15))
		sb.WriteByte('\n')
	}
	r.writeFooter(&sb, s.Totals)
	return sb.String()
}

// CartTable renders the pending cart with its pre-tax total.
func CartTable(lines []SaleLine, totals pricing.Totals) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	writeRule(&sb)
	sb.WriteString(center("Cart") + "\n")
	writeRule(&sb)
	sb.WriteString(pad("ID", 8) + pad("Name", 21) + pad("Rate", 15) + pad("Quantity", 12) +
		pad("Free", 9) + pad("Amount", 15) + "\n")
	writeRule(&sb)
	for _, l := range lines {
		sb.WriteString(pad(strconv.Itoa(l.ProductID), 8))
		sb.WriteString(pad(l.Name, 21))
		sb.WriteString(pad(l.Rate.String(), 15))
		sb.WriteString(pad(strconv.Itoa(l.Quantity), 12))
		sb.WriteString(pad(strconv.Itoa(l.Free), 9))
		sb.WriteString(pad(l.Amount.String(), 15))
		sb.WriteByte('\n')
	}
	writeRule(&sb)
	sb.WriteString("Total: " + totals.Total.String() + "\n")
	writeRule(&sb)
	sb.WriteString("\n\n")
	return sb.String()
}

// InventoryTable renders the product table. ModeSell shows sale prices,
// ModeRestock shows cost prices.
func InventoryTable(products []*store.Product, mode pricing.Mode) string {
	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(center("Inventory") + "\n")
	writeRule(&sb)
	sb.WriteString(pad("ID", 8) + pad("Name", 20) + pad("Brand", 16) + pad("Quantity", 11) +
		pad("Price", 9) + "Origin\n")
	writeRule(&sb)
	for _, p := range products {
		price := p.Price
		if mode == pricing.ModeSell {
			price = p.SalePrice()
		}
		sb.WriteString(pad(strconv.Itoa(p.ID), 8))
		sb.WriteString(pad(p.Name, 20))
		sb.WriteString(pad(p.Brand, 16))
		sb.WriteString(pad(strconv.Itoa(p.Quantity), 11))
		sb.WriteString(pad(price.String(), 9))
		sb.WriteString(p.Origin)
		sb.WriteByte('\n')
	}
	writeRule(&sb)
	sb.WriteString("\n\n")
	return sb.String()
}

// WriteFile writes a rendered document into the invoice directory, naming
// the file from the transaction timestamp.
func (r *Renderer) WriteFile(doc string, at time.Time) (string, error) {
	path := filepath.Join(r.dir, FileName(at))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("invoice: write file: %w", err)
	}
	r.logger.Info("invoice file written", "path", path)
	return path, nil
}

func (r *Renderer) writeTitle(sb *strings.Builder, title, reference string, at time.Time) {
	sb.WriteString("\n\n")
	writeRule(sb)
	sb.WriteString(center(title) + "\n")
	writeRule(sb)
	sb.WriteString(r.header.StoreName + "\n")
	sb.WriteString(r.header.Address + "\n\n")
	sb.WriteString("Reference: " + reference + "\n")
	sb.WriteString("Date: " + at.Format(timeLayout) + "\n")
}

func (r *Renderer) writeFooter(sb *strings.Builder, totals pricing.Totals) {
	writeRule(sb)
	sb.WriteString("Total: " + totals.Total.String() + "\n")
	sb.WriteString("VAT: " + totals.VAT.String() + "\n")
	sb.WriteString("Grand Total: " + totals.GrandTotal.String() + "\n")
	writeRule(sb)
}

func writeRule(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
}

func center(title string) string {
	margin := (lineWidth - len(title)) / 2
	if margin < 0 {
		margin = 0
	}
	return strings.Repeat(" ", margin) + title
}

// pad right-pads text to width; over-length values are cut and trailed with
// "..." so the tabular layout is never broken.
func pad(text string, width int) string {
	runes := []rune(text)
	if len(runes) > width-1 {
		runes = append(runes[:width-4], []rune("...")...)
	}
	return string(runes) + strings.Repeat(" ", width-len(runes))
}
