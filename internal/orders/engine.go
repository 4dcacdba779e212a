package orders

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Engine проводит заказ через строгий двухфазный протокол: чистая фаза
// валидации строит план позиций либо возвращает типизированный отказ, и только
// полностью успешный план переходит в фазу мутации. Откат не нужен, потому что
// до успеха плана не меняется ни одна сущность.
type Engine struct {
	catalog *catalog.Catalog
	book    *Book
	logger  *log.Entry
	now     func() time.Time
}

// NewEngine создаёт движок заказов над каталогом и книгой заказов.
func NewEngine(c *catalog.Catalog, b *Book, logger *log.Entry) *Engine {
	if logger == nil {
		logger = log.New().WithField("component", "order-engine")
	}
	return &Engine{catalog: c, book: b, logger: logger, now: time.Now}
}

// linePlan — результат фазы валидации: позиции, суммарные списания по товарам
// и итог заказа.
type linePlan struct {
	items      []domain.OrderItem
	decrements map[int]int
	total      decimal.Decimal
}

// CreateOrder валидирует запрос и атомарно фиксирует заказ.
//
// Порядок проверок (первый отказ прерывает весь заказ без частичных эффектов):
//  1. покупатель существует;
//  2. для каждой строки по порядку: числовой идентификатор и положительное
//     количество, товар существует, количество не превышает остаток с учётом
//     более ранних строк этого же заказа на тот же товар.
//
// Успех списывает остатки, присваивает следующий номер заказа, добавляет заказ
// в книгу и сохраняет каталог и книгу. Ошибка сохранения не откатывает
// состояние в памяти: заказ возвращается заполненным вместе с ошибкой записи,
// чтобы вызывающий показал предупреждение. Отказы различаются через
// domain.IsOrderRejection.
func (e *Engine) CreateOrder(customerID int, lines []domain.LineRequest) (domain.Order, error) {
	customer, ok := e.catalog.Customer(customerID)
	if !ok {
		return domain.Order{}, fmt.Errorf("customer %d: %w", customerID, domain.ErrCustomerNotFound)
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrOrderEmpty
	}

	plan, err := e.buildPlan(lines)
	if err != nil {
		e.logger.WithError(err).WithField("customer_id", customerID).Info("order rejected")
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:           e.book.NextID(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		CreatedAt:    e.now(),
		Items:        plan.items,
		Total:        plan.total.Round(2),
	}

	// Фаза мутации: выполняется целиком и только после успешного плана.
	var persistErr error
	if err := e.catalog.ApplyStockDecrements(plan.decrements); err != nil {
		e.logger.WithError(err).WithField("order_id", order.ID).
			Warn("catalog persist failed after commit, in-memory state kept")
		persistErr = fmt.Errorf("persist catalog: %w", err)
	}
	if err := e.book.Append(order); err != nil {
		e.logger.WithError(err).WithField("order_id", order.ID).
			Warn("order book persist failed after commit, in-memory state kept")
		if persistErr == nil {
			persistErr = fmt.Errorf("persist order book: %w", err)
		}
	}

	e.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"lines":       len(order.Items),
		"total":       order.Total.StringFixed(2),
	}).Info("order committed")
	return order, persistErr
}

// buildPlan — чистая фаза валидации: не мутирует ни каталог, ни книгу.
func (e *Engine) buildPlan(lines []domain.LineRequest) (linePlan, error) {
	plan := linePlan{decrements: make(map[int]int)}
	for i, line := range lines {
		productID, err := strconv.Atoi(strings.TrimSpace(line.ProductID))
		if err != nil {
			return linePlan{}, fmt.Errorf("line %d: product id %q: %w",
				i+1, line.ProductID, domain.ErrInvalidLineInput)
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(line.Quantity))
		if err != nil || quantity <= 0 {
			return linePlan{}, fmt.Errorf("line %d: quantity %q: %w",
				i+1, line.Quantity, domain.ErrInvalidLineInput)
		}

		product, ok := e.catalog.Product(productID)
		if !ok {
			return linePlan{}, fmt.Errorf("line %d: product %d: %w",
				i+1, productID, domain.ErrProductNotFound)
		}

		// Повторные строки на тот же товар уменьшают доступный остаток.
		available := product.Stock - plan.decrements[productID]
		if quantity > available {
			return linePlan{}, fmt.Errorf("line %d: %s (requested %d, available %d): %w",
				i+1, product.Name, quantity, available, domain.ErrInsufficientStock)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
		plan.items = append(plan.items, domain.OrderItem{
			ProductID: productID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		plan.decrements[productID] += quantity
		plan.total = plan.total.Add(subtotal)
	}
	return plan, nil
}
