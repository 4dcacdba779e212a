package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/orders"
)

// Reports — read-only проекции над книгой заказов и каталогом. Никаких
// мутаций: отчёты можно перегенерировать в любой момент.
type Reports struct {
	catalog *catalog.Catalog
	book    *orders.Book
}

// New создаёт слой отчётов.
func New(c *catalog.Catalog, b *orders.Book) *Reports {
	return &Reports{catalog: c, book: b}
}

// ProductQuantity — пара «название товара, суммарное количество».
type ProductQuantity struct {
	Name     string
	Quantity int
}

// CustomerAmount — пара «имя покупателя, суммарная выручка».
type CustomerAmount struct {
	Name   string
	Amount decimal.Decimal
}

// TotalSales возвращает сумму итогов всех заказов; ноль, если заказов нет.
func (r *Reports) TotalSales() decimal.Decimal {
	total := decimal.Zero
	for _, order := range r.book.Orders() {
		total = total.Add(order.Total)
	}
	return total
}

// OrdersForCustomer возвращает заказы покупателя. Несуществующий покупатель —
// ErrCustomerNotFound; существующий без заказов — пустой срез.
func (r *Reports) OrdersForCustomer(customerID int) ([]domain.Order, error) {
	if _, ok := r.catalog.Customer(customerID); !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrCustomerNotFound)
	}
	result := []domain.Order{}
	for _, order := range r.book.Orders() {
		if order.CustomerID == customerID {
			result = append(result, order)
		}
	}
	return result, nil
}

// FilterByDateRange отбирает заказы по дате оформления. Сравнивается только
// календарная дата, границы включительны; нулевое время снимает границу.
func FilterByDateRange(list []domain.Order, from, to time.Time) []domain.Order {
	var result []domain.Order
	for _, order := range list {
		day := dateOnly(order.CreatedAt)
		if !from.IsZero() && day.Before(dateOnly(from)) {
			continue
		}
		if !to.IsZero() && day.After(dateOnly(to)) {
			continue
		}
		result = append(result, order)
	}
	return result
}

// SalesByMonth группирует выручку по месяцам в формате "YYYY-MM".
func (r *Reports) SalesByMonth() map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal)
	for _, order := range r.book.Orders() {
		month := order.CreatedAt.Format("2006-01")
		result[month] = result[month].Add(order.Total)
	}
	return result
}

// TopProductsByQuantity возвращает до n товаров по суммарному проданному
// количеству, по убыванию. Равные значения идут в порядке первого появления
// в книге заказов.
func (r *Reports) TopProductsByQuantity(n int) []ProductQuantity {
	if n <= 0 {
		return nil
	}
	totals := make(map[string]int)
	var names []string
	for _, order := range r.book.Orders() {
		for _, item := range order.Items {
			if _, seen := totals[item.Name]; !seen {
				names = append(names, item.Name)
			}
			totals[item.Name] += item.Quantity
		}
	}

	result := make([]ProductQuantity, 0, len(names))
	for _, name := range names {
		result = append(result, ProductQuantity{Name: name, Quantity: totals[name]})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Quantity > result[j].Quantity })
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// TopCustomersByAmount возвращает до n покупателей по сумме заказов, по
// убыванию, с той же стабильной обработкой равенств. Суммы агрегируются по
// идентификатору покупателя, поэтому тёзки не сливаются в одну строку; имя
// берётся из первого заказа покупателя.
func (r *Reports) TopCustomersByAmount(n int) []CustomerAmount {
	if n <= 0 {
		return nil
	}
	totals := make(map[int]decimal.Decimal)
	names := make(map[int]string)
	var ids []int
	for _, order := range r.book.Orders() {
		if _, seen := totals[order.CustomerID]; !seen {
			ids = append(ids, order.CustomerID)
			names[order.CustomerID] = order.CustomerName
		}
		totals[order.CustomerID] = totals[order.CustomerID].Add(order.Total)
	}

	result := make([]CustomerAmount, 0, len(ids))
	for _, id := range ids {
		result = append(result, CustomerAmount{Name: names[id], Amount: totals[id]})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Amount.GreaterThan(result[j].Amount) })
	if len(result) > n {
		result = result[:n]
	}
	return result
}

// LowStock возвращает товары с остатком не выше порога, в порядке
// идентификаторов.
func (r *Reports) LowStock(threshold int) []domain.Product {
	var result []domain.Product
	for _, p := range r.catalog.Products() {
		if p.Stock <= threshold {
			result = append(result, p)
		}
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
