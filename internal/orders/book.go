package orders

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/file"
)

// Book — список заказов поверх документного хранилища. Список только
// пополняется: заказы неизменяемы после создания.
type Book struct {
	store  *file.Documents
	orders []domain.Order
	logger *log.Entry
}

// NewBook загружает список заказов. Некорректные документы пропускаются
// с предупреждением.
func NewBook(store *file.Documents, logger *log.Entry) (*Book, error) {
	if logger == nil {
		logger = log.New().WithField("component", "orders")
	}
	b := &Book{store: store, logger: logger}

	docs, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	for i, doc := range docs {
		order, err := decodeOrder(doc)
		if err != nil {
			logger.WithError(err).WithField("index", i).Warn("skipping bad order document")
			continue
		}
		b.orders = append(b.orders, order)
	}

	logger.WithField("orders", len(b.orders)).Info("order book loaded")
	return b, nil
}

// Orders возвращает снимок списка заказов в порядке добавления.
func (b *Book) Orders() []domain.Order {
	result := make([]domain.Order, len(b.orders))
	copy(result, b.orders)
	return result
}

// Len возвращает количество заказов.
func (b *Book) Len() int { return len(b.orders) }

// NextID возвращает max(номера заказов)+1 или 1 для пустого списка.
func (b *Book) NextID() int {
	next := 1
	for _, order := range b.orders {
		if order.ID >= next {
			next = order.ID + 1
		}
	}
	return next
}

// Append добавляет заказ в конец списка и перезаписывает хранилище.
func (b *Book) Append(order domain.Order) error {
	b.orders = append(b.orders, order)
	return b.save()
}

func (b *Book) save() error {
	docs := make([]map[string]any, 0, len(b.orders))
	for _, order := range b.orders {
		docs = append(docs, encodeOrder(order))
	}
	return b.store.Save(docs)
}

// encodeOrder сериализует заказ в документ. Денежные значения уходят в JSON
// числами с двумя знаками после запятой.
func encodeOrder(o domain.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"product_id": json.Number(strconv.Itoa(it.ProductID)),
			"name":       it.Name,
			"quantity":   json.Number(strconv.Itoa(it.Quantity)),
			"unit_price": json.Number(it.UnitPrice.StringFixed(2)),
			"subtotal":   json.Number(it.Subtotal.StringFixed(2)),
		})
	}
	return map[string]any{
		"id":            json.Number(strconv.Itoa(o.ID)),
		"customer_id":   json.Number(strconv.Itoa(o.CustomerID)),
		"customer_name": o.CustomerName,
		"created_at":    o.CreatedAt.Format(domain.CreatedAtLayout),
		"items":         items,
		"total":         json.Number(o.Total.StringFixed(2)),
	}
}

func decodeOrder(doc map[string]any) (domain.Order, error) {
	id, err := docInt(doc, "id")
	if err != nil {
		return domain.Order{}, err
	}
	customerID, err := docInt(doc, "customer_id")
	if err != nil {
		return domain.Order{}, err
	}
	total, err := docDecimal(doc, "total")
	if err != nil {
		return domain.Order{}, err
	}
	createdRaw, _ := doc["created_at"].(string)
	createdAt, err := time.ParseInLocation(domain.CreatedAtLayout, createdRaw, time.Local)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}

	order := domain.Order{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: docString(doc, "customer_name"),
		CreatedAt:    createdAt,
		Total:        total,
	}

	rawItems, _ := doc["items"].([]any)
	for i, rawItem := range rawItems {
		itemDoc, ok := rawItem.(map[string]any)
		if !ok {
			return domain.Order{}, fmt.Errorf("item %d is not an object", i)
		}
		item, err := decodeItem(itemDoc)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item %d: %w", i, err)
		}
		order.Items = append(order.Items, item)
	}
	return order, nil
}

func decodeItem(doc map[string]any) (domain.OrderItem, error) {
	productID, err := docInt(doc, "product_id")
	if err != nil {
		return domain.OrderItem{}, err
	}
	quantity, err := docInt(doc, "quantity")
	if err != nil {
		return domain.OrderItem{}, err
	}
	unitPrice, err := docDecimal(doc, "unit_price")
	if err != nil {
		return domain.OrderItem{}, err
	}
	subtotal, err := docDecimal(doc, "subtotal")
	if err != nil {
		return domain.OrderItem{}, err
	}
	return domain.OrderItem{
		ProductID: productID,
		Name:      docString(doc, "name"),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  subtotal,
	}, nil
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docInt(doc map[string]any, key string) (int, error) {
	num, ok := doc[key].(json.Number)
	if !ok {
		return 0, fmt.Errorf("field %q is missing or not a number", key)
	}
	v, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return v, nil
}

func docDecimal(doc map[string]any, key string) (decimal.Decimal, error) {
	num, ok := doc[key].(json.Number)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("field %q is missing or not a number", key)
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("field %q: %w", key, err)
	}
	return d, nil
}
