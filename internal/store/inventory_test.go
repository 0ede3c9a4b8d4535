package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAssignsPositionalIDs(t *testing.T) {
	path := writeInventory(t, "Apple,Fresh,10,25,Nepal\nRice,Golden,40,80,India\n")

	inv, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, inv.Len())

	p, err := inv.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Apple", p.Name)
	require.Equal(t, "Fresh", p.Brand)
	require.Equal(t, 10, p.Quantity)
	require.True(t, p.Price.Equal(decimal.NewFromInt(25)))
	require.Equal(t, "Nepal", p.Origin)

	p, err = inv.Get(2)
	require.NoError(t, err)
	require.Equal(t, "Rice", p.Name)
	require.Equal(t, 2, p.ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrInventoryFileMissing)
}

func TestLoadRejectsMalformedRecords(t *testing.T) {
	for _, content := range []string{
		"Apple,Fresh,ten,25,Nepal\n",
		"Apple,Fresh,10,abc,Nepal\n",
		"Apple,Fresh,10,-5,Nepal\n",
		"Apple,Fresh,10,25\n",
		",Fresh,10,25,Nepal\n",
		"Apple,Fresh,-1,25,Nepal\n",
	} {
		_, err := Load(writeInventory(t, content))
		require.Error(t, err, "content %q", content)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeInventory(t, "Apple,Fresh,10,25,Nepal\nRice,Golden,40,80,India\n")

	inv, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, inv.Adjust(1, -8))
	require.NoError(t, inv.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Apple,Fresh,2,25,Nepal\nRice,Golden,40,80,India\n", string(data))

	reloaded, err := Load(path)
	require.NoError(t, err)
	p, err := reloaded.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, p.Quantity)
}

func TestGetUnknownID(t *testing.T) {
	inv, err := Load(writeInventory(t, "Apple,Fresh,10,25,Nepal\n"))
	require.NoError(t, err)
	_, err = inv.Get(99)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAdjustGuardsNegativeStock(t *testing.T) {
	inv, err := Load(writeInventory(t, "Apple,Fresh,10,25,Nepal\n"))
	require.NoError(t, err)

	require.ErrorIs(t, inv.Adjust(1, -11), ErrInsufficientStock)
	p, err := inv.Get(1)
	require.NoError(t, err)
	require.Equal(t, 10, p.Quantity)

	require.NoError(t, inv.Adjust(1, -10))
	p, _ = inv.Get(1)
	require.Equal(t, 0, p.Quantity)
}

func TestNextIDSkipsGaps(t *testing.T) {
	inv := &Inventory{products: map[int]*Product{
		1: {ID: 1, Name: "Apple"},
		5: {ID: 5, Name: "Rice"},
	}}
	require.Equal(t, 6, inv.NextID())

	added := inv.Add(Product{Name: "Soap", Quantity: 3, Price: decimal.NewFromInt(40)})
	require.Equal(t, 6, added.ID)
	require.Equal(t, 7, inv.NextID())
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	inv, err := Load(writeInventory(t, "Apple,Fresh,10,25,Nepal\n"))
	require.NoError(t, err)

	added := inv.Add(Product{Name: "Soap", Quantity: 3, Price: decimal.NewFromInt(40), Origin: "India"})
	require.Equal(t, 2, added.ID)

	got, err := inv.Get(2)
	require.NoError(t, err)
	require.Equal(t, "Soap", got.Name)
}

func TestSalePriceDoublesCost(t *testing.T) {
	p := Product{Price: decimal.NewFromInt(25)}
	require.True(t, p.SalePrice().Equal(decimal.NewFromInt(50)))
}

func TestProductsSortedByID(t *testing.T) {
	inv, err := Load(writeInventory(t, "A,a,1,1,x\nB,b,2,2,y\nC,c,3,3,z\n"))
	require.NoError(t, err)
	products := inv.Products()
	require.Len(t, products, 3)
	for i, p := range products {
		require.Equal(t, i+1, p.ID)
	}
}
