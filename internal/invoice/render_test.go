package invoice

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"wecare-system/internal/pricing"
	"wecare-system/internal/store"
)

func testRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRenderer(Header{StoreName: "WeCare Store", Address: "Samakushi, Kathmandu, Nepal"}, dir, logger)
	return r, dir
}

func TestPad(t *testing.T) {
	require.Equal(t, "hello     ", pad("hello", 10))
	require.Equal(t, 10, len(pad("hello", 10)))

	// Over-length values are cut and trailed with "...".
	got := pad("averylongproductname", 10)
	require.Equal(t, "averyl... ", got)
	require.Equal(t, 10, len(got))
}

func TestFileNameStripsColons(t *testing.T) {
	at := time.Date(2026, 8, 29, 14, 30, 5, 123456000, time.UTC)
	name := FileName(at)
	require.NotContains(t, name, ":")
	require.True(t, strings.HasSuffix(name, ".txt"))
	require.Contains(t, name, "2026-08-29")
}

func TestSaleDocument(t *testing.T) {
	r, _ := testRenderer(t)
	billing := Billing{
		Reference:    "ref-123",
		Time:         time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		CustomerName: "John Doe",
		Phone:        "9812345678",
		Totals: pricing.Totals{
			Total:      decimal.NewFromInt(300),
			VAT:        decimal.NewFromInt(39),
			GrandTotal: decimal.NewFromInt(339),
		},
	}
	lines := []SaleLine{{
		ProductID: 1,
		Name:      "Apple",
		Brand:     "Fresh",
		Rate:      decimal.NewFromInt(50),
		Quantity:  8,
		Free:      2,
		Amount:    decimal.NewFromInt(300),
	}}

	doc := r.SaleDocument(billing, lines)
	require.Contains(t, doc, "CUSTOMER INVOICE")
	require.Contains(t, doc, "WeCare Store")
	require.Contains(t, doc, "Name: John Doe")
	require.Contains(t, doc, "Phone no.: 9812345678")
	require.Contains(t, doc, "Apple")
	require.Contains(t, doc, "Total: 300\n")
	require.Contains(t, doc, "VAT: 39\n")
	require.Contains(t, doc, "Grand Total: 339\n")
}

func TestRestockDocument(t *testing.T) {
	r, _ := testRenderer(t)
	summary := RestockSummary{
		Reference: "ref-456",
		Time:      time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		Totals: pricing.Totals{
			Total:      decimal.NewFromInt(400),
			VAT:        decimal.RequireFromString("52"),
			GrandTotal: decimal.RequireFromString("452"),
		},
	}
	lines := []StockLine{{
		ProductID: 2,
		Name:      "Rice",
		Brand:     "Golden",
		Rate:      decimal.NewFromInt(50),
		Quantity:  4,
		Supplier:  "ACME Traders",
		Amount:    decimal.NewFromInt(200),
	}}

	doc := r.RestockDocument(summary, lines)
	require.Contains(t, doc, "RESTOCK INVOICE")
	require.Contains(t, doc, "ACME Trader")
	require.Contains(t, doc, "Total: 400\n")
	require.Contains(t, doc, "VAT: 52\n")
	require.Contains(t, doc, "Grand Total: 452\n")
}

func TestWriteFile(t *testing.T) {
	r, dir := testRenderer(t)
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	path, err := r.WriteFile("document body", at)
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "document body", string(data))
}

func TestInventoryTablePrices(t *testing.T) {
	products := []*store.Product{
		{ID: 1, Name: "Apple", Brand: "Fresh", Quantity: 10, Price: decimal.NewFromInt(25), Origin: "Nepal"},
	}

	sell := InventoryTable(products, pricing.ModeSell)
	require.Contains(t, sell, "50")
	require.NotContains(t, sell, "25 ")

	stock := InventoryTable(products, pricing.ModeRestock)
	require.Contains(t, stock, "25")
}
