package export_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/export"
)

func sampleOrders(t *testing.T) []domain.Order {
	t.Helper()
	created, err := time.ParseInLocation(domain.CreatedAtLayout, "2025-03-14 10:30:00", time.Local)
	require.NoError(t, err)
	return []domain.Order{
		{
			ID:           1,
			CustomerID:   1,
			CustomerName: "Cristian Rodriguez",
			CreatedAt:    created,
			Items: []domain.OrderItem{
				{ProductID: 1, Name: "Arroz", Quantity: 2, UnitPrice: decimal.NewFromInt(12000), Subtotal: decimal.NewFromInt(24000)},
				{ProductID: 2, Name: "Pan", Quantity: 3, UnitPrice: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(1500)},
			},
			Total: decimal.NewFromInt(25500),
		},
	}
}

func TestExcel_WritesBothSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, export.Excel(path, sampleOrders(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.ElementsMatch(t, []string{"Orders", "Items"}, f.GetSheetList())

	name, err := f.GetCellValue("Orders", "C2")
	require.NoError(t, err)
	require.Equal(t, "Cristian Rodriguez", name)

	// Позиции развёрнуты по одной на строку с привязкой к номеру заказа.
	orderID, err := f.GetCellValue("Items", "A3")
	require.NoError(t, err)
	require.Equal(t, "1", orderID)
	itemName, err := f.GetCellValue("Items", "C3")
	require.NoError(t, err)
	require.Equal(t, "Pan", itemName)
}

func TestExcel_EmptyBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, export.Excel(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Orders", "A1")
	require.NoError(t, err)
	require.Equal(t, "id", header)
}

func TestPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.pdf")
	require.NoError(t, export.PDF(path, "Sales report", sampleOrders(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(500))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(raw[:4]))
}
