package ui

import (
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Table печатает произвольную таблицу с заголовком.
func (c *Console) Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}

// ProductTable печатает товары по явной схеме колонок для товаров.
func (c *Console) ProductTable(title string, products []domain.Product) {
	if len(products) == 0 {
		c.Println("No products registered.")
		return
	}
	c.Titlef("%s", title)
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			"$" + p.Price.StringFixed(2),
			strconv.Itoa(p.Stock),
		})
	}
	c.Table(domain.DisplayColumns(domain.KindProduct), rows)
}

// CustomerTable печатает покупателей по явной схеме колонок для покупателей.
func (c *Console) CustomerTable(title string, customers []domain.Customer) {
	if len(customers) == 0 {
		c.Println("No customers registered.")
		return
	}
	c.Titlef("%s", title)
	rows := make([][]string, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, []string{strconv.Itoa(cust.ID), cust.Name, cust.Email})
	}
	c.Table(domain.DisplayColumns(domain.KindCustomer), rows)
}

// OrderTable печатает один заказ: позиции и итог.
func (c *Console) OrderTable(order domain.Order) {
	c.Titlef("Order #%d - %s - %s", order.ID, order.CreatedAt.Format(domain.CreatedAtLayout), order.CustomerName)
	rows := make([][]string, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, []string{
			item.Name,
			strconv.Itoa(item.Quantity),
			"$" + item.UnitPrice.StringFixed(2),
			"$" + item.Subtotal.StringFixed(2),
		})
	}
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(domain.DisplayColumns(domain.KindOrder))
	table.SetFooter([]string{"", "", "TOTAL", "$" + order.Total.StringFixed(2)})
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
