package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/ui"
)

func TestConsole_PromptTrimsInput(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader("  Pan \n"), &out)

	require.Equal(t, "Pan", console.Prompt("Name"))
	require.Contains(t, out.String(), "Name: ")
}

func TestConsole_PromptIntRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader("abc\n7\n"), &out)

	_, err := console.PromptInt("ID")
	require.Error(t, err)

	v, err := console.PromptInt("ID")
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestConsole_PromptOnClosedInput(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader("Pan\n"), &out)

	require.Equal(t, "Pan", console.Prompt("Name"))
	require.False(t, console.Closed())

	// Исчерпанный ввод: пустой ответ и взведённый флаг закрытия.
	require.Equal(t, "", console.Prompt("Name"))
	require.True(t, console.Closed())
	require.Equal(t, "", console.Prompt("Name"))
	require.True(t, console.Closed())
}

func TestConsole_ProductTable(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader(""), &out)

	console.ProductTable("Products", []domain.Product{
		{ID: 1, Name: "Arroz", Price: decimal.NewFromInt(12000), Stock: 15},
	})

	rendered := out.String()
	require.Contains(t, rendered, "Arroz")
	require.Contains(t, rendered, "$12000.00")
	require.Contains(t, rendered, "15")
}

func TestConsole_EmptyTablesPrintNote(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader(""), &out)

	console.ProductTable("Products", nil)
	console.CustomerTable("Customers", nil)

	require.Contains(t, out.String(), "No products registered.")
	require.Contains(t, out.String(), "No customers registered.")
}

func TestConsole_OrderTableShowsTotal(t *testing.T) {
	var out bytes.Buffer
	console := ui.NewConsole(strings.NewReader(""), &out)

	console.OrderTable(domain.Order{
		ID:           1,
		CustomerName: "Mariana",
		Items: []domain.OrderItem{
			{Name: "Pan", Quantity: 3, UnitPrice: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(1500)},
		},
		Total: decimal.NewFromInt(1500),
	})

	rendered := out.String()
	require.Contains(t, rendered, "Pan")
	require.Contains(t, rendered, "$1500.00")
}
