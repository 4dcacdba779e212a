package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// PDF выгружает отчёт по заказам: титул, таблица-сводка и таблица позиций.
// Альбомный Letter, постраничная разбивка средствами fpdf.
func PDF(path, title string, list []domain.Order) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	summaryWidths := []float64{18, 50, 90, 35}
	summaryHeaders := []string{"ID", "Date", "Customer", "Total"}
	drawHeader(pdf, summaryHeaders, summaryWidths, 15, 118, 110)
	pdf.SetFont("Helvetica", "", 10)
	for _, order := range list {
		cells := []string{
			fmt.Sprintf("%d", order.ID),
			order.CreatedAt.Format(domain.CreatedAtLayout),
			order.CustomerName,
			order.Total.StringFixed(2),
		}
		drawRow(pdf, cells, summaryWidths)
	}
	pdf.Ln(6)

	hasItems := false
	for _, order := range list {
		if len(order.Items) > 0 {
			hasItems = true
			break
		}
	}
	if hasItems {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Items by order", "", 1, "L", false, 0, "")

		itemWidths := []float64{22, 25, 90, 22, 30, 30}
		itemHeadersRow := []string{"Order ID", "Product ID", "Name", "Qty", "Unit price", "Subtotal"}
		drawHeader(pdf, itemHeadersRow, itemWidths, 14, 165, 164)
		pdf.SetFont("Helvetica", "", 10)
		for _, order := range list {
			for _, item := range order.Items {
				cells := []string{
					fmt.Sprintf("%d", order.ID),
					fmt.Sprintf("%d", item.ProductID),
					item.Name,
					fmt.Sprintf("%d", item.Quantity),
					item.UnitPrice.StringFixed(2),
					item.Subtotal.StringFixed(2),
				}
				drawRow(pdf, cells, itemWidths)
			}
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

func drawHeader(pdf *fpdf.Fpdf, headers []string, widths []float64, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawRow(pdf *fpdf.Fpdf, cells []string, widths []float64) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
