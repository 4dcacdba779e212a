package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/file"
)

// Проекции полей табличных хранилищ. Порядок полей фиксирует формат файла.
var (
	ProductFields  = []string{"id", "name", "price", "stock"}
	CustomerFields = []string{"id", "name", "email"}
)

// Catalog — in-memory отображение «идентификатор → сущность» для товаров и
// покупателей поверх двух табличных хранилищ. Каталог единолично владеет
// экземплярами Product и Customer; каждая мутация сразу сохраняется.
type Catalog struct {
	products  map[int]*domain.Product
	customers map[int]*domain.Customer

	productTable  *file.Table
	customerTable *file.Table
	logger        *log.Entry
}

// New загружает каталог из табличных хранилищ. Некорректные записи
// пропускаются с предупреждением.
func New(products, customers *file.Table, logger *log.Entry) (*Catalog, error) {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	c := &Catalog{
		products:      make(map[int]*domain.Product),
		customers:     make(map[int]*domain.Customer),
		productTable:  products,
		customerTable: customers,
		logger:        logger,
	}

	productRows, err := products.Load()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for _, row := range productRows {
		p, err := decodeProduct(row)
		if err != nil {
			logger.WithError(err).WithField("row", row).Warn("skipping bad product row")
			continue
		}
		c.products[p.ID] = p
	}

	customerRows, err := customers.Load()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	for _, row := range customerRows {
		cust, err := decodeCustomer(row)
		if err != nil {
			logger.WithError(err).WithField("row", row).Warn("skipping bad customer row")
			continue
		}
		c.customers[cust.ID] = cust
	}

	logger.WithFields(log.Fields{
		"products":  len(c.products),
		"customers": len(c.customers),
	}).Info("catalog loaded")
	return c, nil
}

// nextID возвращает max(ключи)+1 или 1 для пустой коллекции.
func nextID[V any](items map[int]V) int {
	next := 1
	for id := range items {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Product возвращает копию товара по идентификатору.
func (c *Catalog) Product(id int) (domain.Product, bool) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// Customer возвращает копию покупателя по идентификатору.
func (c *Catalog) Customer(id int) (domain.Customer, bool) {
	cust, ok := c.customers[id]
	if !ok {
		return domain.Customer{}, false
	}
	return *cust, true
}

// Products возвращает снимок всех товаров в порядке идентификаторов.
func (c *Catalog) Products() []domain.Product {
	result := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Customers возвращает снимок всех покупателей в порядке идентификаторов.
func (c *Catalog) Customers() []domain.Customer {
	result := make([]domain.Customer, 0, len(c.customers))
	for _, cust := range c.customers {
		result = append(result, *cust)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// AddProduct создаёт товар со свежим идентификатором и сохраняет каталог.
// Значения не валидируются сверх приведения типов: политика отклонения
// отрицательных цен или остатков здесь сознательно не вводится.
func (c *Catalog) AddProduct(name string, price decimal.Decimal, stock int) (domain.Product, error) {
	p := &domain.Product{ID: nextID(c.products), Name: name, Price: price, Stock: stock}
	c.products[p.ID] = p
	return *p, c.saveProducts()
}

// UpdateProduct применяет частичное обновление. Если товара нет, возвращает
// ErrProductNotFound без каких-либо изменений.
func (c *Catalog) UpdateProduct(id int, u domain.ProductUpdate) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	return c.saveProducts()
}

// DeleteProduct удаляет товар и сохраняет каталог.
func (c *Catalog) DeleteProduct(id int) error {
	if _, ok := c.products[id]; !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	delete(c.products, id)
	return c.saveProducts()
}

// AddCustomer создаёт покупателя со свежим идентификатором и сохраняет каталог.
func (c *Catalog) AddCustomer(name, email string) (domain.Customer, error) {
	cust := &domain.Customer{ID: nextID(c.customers), Name: name, Email: email}
	c.customers[cust.ID] = cust
	return *cust, c.saveCustomers()
}

// UpdateCustomer применяет частичное обновление покупателя.
func (c *Catalog) UpdateCustomer(id int, u domain.CustomerUpdate) error {
	cust, ok := c.customers[id]
	if !ok {
		return fmt.Errorf("customer %d: %w", id, domain.ErrCustomerNotFound)
	}
	if u.Name != nil {
		cust.Name = *u.Name
	}
	if u.Email != nil {
		cust.Email = *u.Email
	}
	return c.saveCustomers()
}

// DeleteCustomer удаляет покупателя и сохраняет каталог.
func (c *Catalog) DeleteCustomer(id int) error {
	if _, ok := c.customers[id]; !ok {
		return fmt.Errorf("customer %d: %w", id, domain.ErrCustomerNotFound)
	}
	delete(c.customers, id)
	return c.saveCustomers()
}

// SearchProductsByName ищет товары по подстроке названия без учёта регистра.
// Результат идёт в порядке идентификаторов; это не ранжированный поиск.
func (c *Catalog) SearchProductsByName(term string) []domain.Product {
	needle := strings.ToLower(term)
	var result []domain.Product
	for _, p := range c.Products() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			result = append(result, p)
		}
	}
	return result
}

// ApplyStockDecrements списывает остатки по подготовленному плану и сохраняет
// каталог одной записью. Проверка достаточности остатков — обязанность
// вызывающего движка, выполняемая до любых мутаций.
func (c *Catalog) ApplyStockDecrements(decrements map[int]int) error {
	for id, qty := range decrements {
		if p, ok := c.products[id]; ok {
			p.Stock -= qty
		}
	}
	return c.saveProducts()
}

func (c *Catalog) saveProducts() error {
	products := c.Products()
	rows := make([]map[string]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, map[string]string{
			"id":    strconv.Itoa(p.ID),
			"name":  p.Name,
			"price": p.Price.String(),
			"stock": strconv.Itoa(p.Stock),
		})
	}
	return c.productTable.Save(rows)
}

func (c *Catalog) saveCustomers() error {
	customers := c.Customers()
	rows := make([]map[string]string, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, map[string]string{
			"id":    strconv.Itoa(cust.ID),
			"name":  cust.Name,
			"email": cust.Email,
		})
	}
	return c.customerTable.Save(rows)
}

func decodeProduct(row map[string]string) (*domain.Product, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return nil, fmt.Errorf("parse product id %q: %w", row["id"], err)
	}
	price, err := decimal.NewFromString(row["price"])
	if err != nil {
		return nil, fmt.Errorf("parse product price %q: %w", row["price"], err)
	}
	stock, err := strconv.Atoi(row["stock"])
	if err != nil {
		return nil, fmt.Errorf("parse product stock %q: %w", row["stock"], err)
	}
	return &domain.Product{ID: id, Name: row["name"], Price: price, Stock: stock}, nil
}

func decodeCustomer(row map[string]string) (*domain.Customer, error) {
	id, err := strconv.Atoi(row["id"])
	if err != nil {
		return nil, fmt.Errorf("parse customer id %q: %w", row["id"], err)
	}
	return &domain.Customer{ID: id, Name: row["name"], Email: row["email"]}, nil
}
