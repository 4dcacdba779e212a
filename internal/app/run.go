package app

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/export"
	"github.com/vladislavdragonenkov/storefront/internal/report"
	"github.com/vladislavdragonenkov/storefront/internal/ui"
)

const dateLayout = "2006-01-02"

// Run загружает сессию и крутит главное меню до выбора «0».
func Run(cfg Config, console *ui.Console, logger *log.Entry) error {
	session, err := NewSession(cfg, logger)
	if err != nil {
		return err
	}
	return session.Run(console)
}

// Run — главный цикл сессии. Каждая операция выполняется до конца до
// возврата в меню; фоновых задач нет.
func (s *Session) Run(console *ui.Console) error {
	for {
		console.Menu("Store management", [][2]string{
			{"1", "Products (CRUD)"},
			{"2", "Customers (CRUD)"},
			{"3", "Create new order"},
			{"4", "Customer order history"},
			{"5", "Search products by name"},
			{"6", "Sales reports"},
			{"0", "Exit"},
		})
		choice := console.Prompt(">>> Select an option")
		if console.Closed() {
			console.Println("Bye!")
			s.logger.Info("input closed, session finished")
			return nil
		}
		switch choice {
		case "1":
			s.runProducts(console)
		case "2":
			s.runCustomers(console)
		case "3":
			s.createOrder(console)
		case "4":
			s.customerHistory(console)
		case "5":
			s.searchProducts(console)
		case "6":
			s.runReports(console)
		case "0":
			console.Println("Bye!")
			s.logger.Info("session finished")
			return nil
		default:
			console.Failuref("invalid option")
		}
	}
}

func (s *Session) runProducts(console *ui.Console) {
	for {
		console.Menu("Products", [][2]string{
			{"1", "Create"},
			{"2", "List all"},
			{"3", "Update"},
			{"4", "Delete"},
			{"0", "Back"},
		})
		choice := console.Prompt("Select an option")
		if console.Closed() {
			return
		}
		switch choice {
		case "1":
			name := console.Prompt("Name")
			price, err := decimal.NewFromString(console.Prompt("Price"))
			if err != nil {
				console.Failuref("invalid price")
				continue
			}
			stock, err := console.PromptInt("Stock")
			if err != nil {
				console.Failuref("invalid stock")
				continue
			}
			p, err := s.Catalog.AddProduct(name, price, stock)
			s.warnOnPersist(console, err)
			console.Successf("product %q added with ID %d", p.Name, p.ID)
		case "2":
			console.ProductTable("Registered products", s.Catalog.Products())
		case "3":
			s.updateProduct(console)
		case "4":
			id, err := console.PromptInt("Product ID to delete")
			if err != nil {
				console.Failuref("invalid ID")
				continue
			}
			if err := s.Catalog.DeleteProduct(id); err != nil {
				s.reportCatalogErr(console, err)
				continue
			}
			console.Successf("product %d deleted", id)
		case "0":
			return
		default:
			console.Failuref("invalid option")
		}
	}
}

// updateProduct собирает частичное обновление: пустой ввод оставляет поле
// без изменений.
func (s *Session) updateProduct(console *ui.Console) {
	id, err := console.PromptInt("Product ID to update")
	if err != nil {
		console.Failuref("invalid ID")
		return
	}

	update := domain.ProductUpdate{}
	if v := console.Prompt("New name (empty to keep)"); v != "" {
		update.Name = &v
	}
	if v := console.Prompt("New price (empty to keep)"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			console.Failuref("invalid price")
			return
		}
		update.Price = &price
	}
	if v := console.Prompt("New stock (empty to keep)"); v != "" {
		stock, convErr := strconv.Atoi(v)
		if convErr != nil {
			console.Failuref("invalid stock")
			return
		}
		update.Stock = &stock
	}

	if err := s.Catalog.UpdateProduct(id, update); err != nil {
		s.reportCatalogErr(console, err)
		return
	}
	console.Successf("product %d updated", id)
}

func (s *Session) runCustomers(console *ui.Console) {
	for {
		console.Menu("Customers", [][2]string{
			{"1", "Create"},
			{"2", "List all"},
			{"3", "Update"},
			{"4", "Delete"},
			{"0", "Back"},
		})
		choice := console.Prompt("Select an option")
		if console.Closed() {
			return
		}
		switch choice {
		case "1":
			name := console.Prompt("Name")
			email := console.Prompt("Email")
			cust, err := s.Catalog.AddCustomer(name, email)
			s.warnOnPersist(console, err)
			console.Successf("customer %q added with ID %d", cust.Name, cust.ID)
		case "2":
			console.CustomerTable("Registered customers", s.Catalog.Customers())
		case "3":
			s.updateCustomer(console)
		case "4":
			id, err := console.PromptInt("Customer ID to delete")
			if err != nil {
				console.Failuref("invalid ID")
				continue
			}
			if err := s.Catalog.DeleteCustomer(id); err != nil {
				s.reportCatalogErr(console, err)
				continue
			}
			console.Successf("customer %d deleted", id)
		case "0":
			return
		default:
			console.Failuref("invalid option")
		}
	}
}

func (s *Session) updateCustomer(console *ui.Console) {
	id, err := console.PromptInt("Customer ID to update")
	if err != nil {
		console.Failuref("invalid ID")
		return
	}

	update := domain.CustomerUpdate{}
	if v := console.Prompt("New name (empty to keep)"); v != "" {
		update.Name = &v
	}
	if v := console.Prompt("New email (empty to keep)"); v != "" {
		update.Email = &v
	}

	if err := s.Catalog.UpdateCustomer(id, update); err != nil {
		s.reportCatalogErr(console, err)
		return
	}
	console.Successf("customer %d updated", id)
}

// createOrder собирает строки заказа и отдаёт их движку одним запросом.
// Никакие остатки не меняются, пока движок не подтвердит весь заказ.
func (s *Session) createOrder(console *ui.Console) {
	console.CustomerTable("Customers", s.Catalog.Customers())
	customerID, err := console.PromptInt("Customer ID placing the order")
	if err != nil {
		console.Failuref("invalid customer ID")
		return
	}

	console.ProductTable("Current stock", s.Catalog.Products())
	console.Titlef("--- Add products (enter 'done' to finish) ---")

	var lines []domain.LineRequest
	for {
		productID := console.Prompt("Product ID")
		if console.Closed() || strings.EqualFold(productID, "done") {
			break
		}
		quantity := console.Prompt("Quantity")
		lines = append(lines, domain.LineRequest{ProductID: productID, Quantity: quantity})
	}
	if len(lines) == 0 {
		console.Failuref("order canceled, no products selected")
		return
	}

	order, err := s.Engine.CreateOrder(customerID, lines)
	if err != nil && domain.IsOrderRejection(err) {
		console.Failuref("order rejected: %v", err)
		return
	}
	// Заказ зафиксирован; ошибка здесь может быть только сбоем записи.
	s.warnOnPersist(console, err)
	console.Successf("order %d created, total $%s", order.ID, order.Total.StringFixed(2))
}

func (s *Session) customerHistory(console *ui.Console) {
	customerID, err := console.PromptInt("Customer ID")
	if err != nil {
		console.Failuref("invalid customer ID")
		return
	}

	history, err := s.Reports.OrdersForCustomer(customerID)
	if err != nil {
		s.reportCatalogErr(console, err)
		return
	}
	if len(history) == 0 {
		console.Println("This customer has no orders yet.")
		return
	}
	for _, order := range history {
		console.OrderTable(order)
	}
}

func (s *Session) searchProducts(console *ui.Console) {
	term := console.Prompt("Name or part of the name")
	results := s.Catalog.SearchProductsByName(term)
	if len(results) == 0 {
		console.Println("Nothing found.")
		return
	}
	console.ProductTable("Results for "+strconv.Quote(term), results)
}

func (s *Session) runReports(console *ui.Console) {
	for {
		console.Menu("Sales reports", [][2]string{
			{"1", "Total sales"},
			{"2", "Sales by month"},
			{"3", "Top products by quantity"},
			{"4", "Top customers by amount"},
			{"5", "Low stock"},
			{"6", "Orders in a date range"},
			{"7", "Export orders to Excel"},
			{"8", "Export orders to PDF"},
			{"0", "Back"},
		})
		choice := console.Prompt("Select an option")
		if console.Closed() {
			return
		}
		switch choice {
		case "1":
			console.Successf("total sales: $%s", s.Reports.TotalSales().StringFixed(2))
		case "2":
			s.salesByMonth(console)
		case "3":
			s.topProducts(console)
		case "4":
			s.topCustomers(console)
		case "5":
			s.lowStock(console)
		case "6":
			s.ordersInRange(console)
		case "7":
			path := promptPath(console, "Output file", "orders.xlsx")
			if err := export.Excel(path, s.Book.Orders()); err != nil {
				console.Failuref("export failed: %v", err)
				continue
			}
			console.Successf("orders exported to %s", path)
		case "8":
			path := promptPath(console, "Output file", "orders.pdf")
			if err := export.PDF(path, "Sales report", s.Book.Orders()); err != nil {
				console.Failuref("export failed: %v", err)
				continue
			}
			console.Successf("orders exported to %s", path)
		case "0":
			return
		default:
			console.Failuref("invalid option")
		}
	}
}

func (s *Session) salesByMonth(console *ui.Console) {
	byMonth := s.Reports.SalesByMonth()
	if len(byMonth) == 0 {
		console.Println("No orders yet.")
		return
	}
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	rows := make([][]string, 0, len(months))
	for _, month := range months {
		rows = append(rows, []string{month, "$" + byMonth[month].StringFixed(2)})
	}
	console.Table([]string{"Month", "Sales"}, rows)
}

func (s *Session) topProducts(console *ui.Console) {
	n, err := console.PromptInt("How many")
	if err != nil {
		console.Failuref("invalid number")
		return
	}
	top := s.Reports.TopProductsByQuantity(n)
	if len(top) == 0 {
		console.Println("No orders yet.")
		return
	}
	rows := make([][]string, 0, len(top))
	for _, entry := range top {
		rows = append(rows, []string{entry.Name, strconv.Itoa(entry.Quantity)})
	}
	console.Table([]string{"Product", "Quantity sold"}, rows)
}

func (s *Session) topCustomers(console *ui.Console) {
	n, err := console.PromptInt("How many")
	if err != nil {
		console.Failuref("invalid number")
		return
	}
	top := s.Reports.TopCustomersByAmount(n)
	if len(top) == 0 {
		console.Println("No orders yet.")
		return
	}
	rows := make([][]string, 0, len(top))
	for _, entry := range top {
		rows = append(rows, []string{entry.Name, "$" + entry.Amount.StringFixed(2)})
	}
	console.Table([]string{"Customer", "Amount"}, rows)
}

func (s *Session) lowStock(console *ui.Console) {
	threshold, err := console.PromptInt("Stock threshold")
	if err != nil {
		console.Failuref("invalid threshold")
		return
	}
	low := s.Reports.LowStock(threshold)
	if len(low) == 0 {
		console.Println("No products at or below the threshold.")
		return
	}
	console.ProductTable("Low stock", low)
}

func (s *Session) ordersInRange(console *ui.Console) {
	from, ok := promptDate(console, "From (YYYY-MM-DD, empty for open)")
	if !ok {
		return
	}
	to, ok := promptDate(console, "To (YYYY-MM-DD, empty for open)")
	if !ok {
		return
	}

	filtered := report.FilterByDateRange(s.Book.Orders(), from, to)
	if len(filtered) == 0 {
		console.Println("No orders in that range.")
		return
	}
	for _, order := range filtered {
		console.OrderTable(order)
	}
}

// warnOnPersist сообщает о сбое записи на диск: состояние в памяти уже
// обновлено и не откатывается.
func (s *Session) warnOnPersist(console *ui.Console, err error) {
	if err != nil {
		s.logger.WithError(err).Warn("persist failed, in-memory state kept")
		console.Warnf("saved in memory, but writing to disk failed: %v", err)
	}
}

func (s *Session) reportCatalogErr(console *ui.Console, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		console.Failuref("product not found")
	case errors.Is(err, domain.ErrCustomerNotFound):
		console.Failuref("customer not found")
	default:
		s.warnOnPersist(console, err)
	}
}

func promptDate(console *ui.Console, label string) (time.Time, bool) {
	raw := console.Prompt(label)
	if raw == "" {
		return time.Time{}, true
	}
	ts, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		console.Failuref("invalid date %q, expected YYYY-MM-DD", raw)
		return time.Time{}, false
	}
	return ts, true
}

func promptPath(console *ui.Console, label, fallback string) string {
	if v := console.Prompt(label + " (default " + fallback + ")"); v != "" {
		return v
	}
	return fallback
}
