package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Названия листов книги экспорта.
const (
	ordersSheet = "Orders"
	itemsSheet  = "Items"
)

var (
	orderHeaders = []string{"id", "customer_id", "customer_name", "created_at", "total"}
	itemHeaders  = []string{"order_id", "product_id", "name", "quantity", "unit_price", "subtotal"}
)

// Excel выгружает книгу заказов в xlsx: лист-сводка по заказам и лист позиций,
// развёрнутых по одной на строку с привязкой к номеру заказа. Экспорт — чистая
// проекция, состояние системы не меняется.
func Excel(path string, list []domain.Order) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return fmt.Errorf("rename orders sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}

	if err := writeRow(f, ordersSheet, 1, toCells(orderHeaders)); err != nil {
		return err
	}
	for i, order := range list {
		row := []any{
			order.ID,
			order.CustomerID,
			order.CustomerName,
			order.CreatedAt.Format(domain.CreatedAtLayout),
			order.Total.InexactFloat64(),
		}
		if err := writeRow(f, ordersSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, itemsSheet, 1, toCells(itemHeaders)); err != nil {
		return err
	}
	rowNum := 2
	for _, order := range list {
		for _, item := range order.Items {
			row := []any{
				order.ID,
				item.ProductID,
				item.Name,
				item.Quantity,
				item.UnitPrice.InexactFloat64(),
				item.Subtotal.InexactFloat64(),
			}
			if err := writeRow(f, itemsSheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}

	if err := fitColumns(f, ordersSheet, orderHeaders); err != nil {
		return err
	}
	if err := fitColumns(f, itemsSheet, itemHeaders); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name (%d,%d): %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// fitColumns выставляет ширину колонок: len(заголовок)+2, но не меньше 10.
func fitColumns(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name %d: %w", i+1, err)
		}
		width := float64(len(header) + 2)
		if width < 10 {
			width = 10
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set column width %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}
