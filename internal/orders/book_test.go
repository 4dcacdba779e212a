package orders_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/orders"
	"github.com/vladislavdragonenkov/storefront/internal/storage/file"
)

func sampleOrder(id int) domain.Order {
	created, _ := time.ParseInLocation(domain.CreatedAtLayout, "2025-03-14 10:30:00", time.Local)
	return domain.Order{
		ID:           id,
		CustomerID:   1,
		CustomerName: "Cristian Rodriguez",
		CreatedAt:    created,
		Items: []domain.OrderItem{
			{
				ProductID: 1,
				Name:      "Arroz",
				Quantity:  2,
				UnitPrice: decimal.NewFromInt(12000),
				Subtotal:  decimal.NewFromInt(24000),
			},
		},
		Total: decimal.NewFromInt(24000),
	}
}

func TestBook_NextIDOnEmptyBook(t *testing.T) {
	store := file.NewDocuments(filepath.Join(t.TempDir(), "orders.json"), testLogger())
	book, err := orders.NewBook(store, testLogger())
	require.NoError(t, err)
	require.Equal(t, 1, book.NextID())
}

func TestBook_NextIDAfterGaps(t *testing.T) {
	store := file.NewDocuments(filepath.Join(t.TempDir(), "orders.json"), testLogger())
	book, err := orders.NewBook(store, testLogger())
	require.NoError(t, err)

	require.NoError(t, book.Append(sampleOrder(5)))
	require.NoError(t, book.Append(sampleOrder(2)))
	require.Equal(t, 6, book.NextID())
}

func TestBook_AppendPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")

	store := file.NewDocuments(path, testLogger())
	book, err := orders.NewBook(store, testLogger())
	require.NoError(t, err)
	require.NoError(t, book.Append(sampleOrder(1)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"customer_name": "Cristian Rodriguez"`)
	require.Contains(t, string(raw), `"total": 24000.00`)
	require.True(t, strings.HasPrefix(string(raw), "["), "order store must be a JSON array")

	reloaded, err := orders.NewBook(file.NewDocuments(path, testLogger()), testLogger())
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())

	got := reloaded.Orders()[0]
	require.Equal(t, 1, got.ID)
	require.Equal(t, "Arroz", got.Items[0].Name)
	require.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(12000)))
	require.Equal(t, "2025-03-14 10:30:00", got.CreatedAt.Format(domain.CreatedAtLayout))
}

func TestBook_SkipsBadDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	content := `[
    {"id": 1, "customer_id": 1, "customer_name": "A", "created_at": "2025-01-02 09:00:00", "items": [], "total": 10.00},
    {"id": "oops"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	book, err := orders.NewBook(file.NewDocuments(path, testLogger()), testLogger())
	require.NoError(t, err)
	require.Equal(t, 1, book.Len())
	require.Equal(t, 2, book.NextID())
}
