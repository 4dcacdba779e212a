package app

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/orders"
	"github.com/vladislavdragonenkov/storefront/internal/report"
	"github.com/vladislavdragonenkov/storefront/internal/storage/file"
)

// Session — явный объект сессии: владеет каталогом, книгой заказов, движком
// и отчётами. Передаётся туда, где он нужен, вместо глобального состояния,
// поэтому тесты поднимают изолированные сессии над временными каталогами.
type Session struct {
	// ID — идентификатор сессии для корреляции логов.
	ID string

	Catalog *catalog.Catalog
	Book    *orders.Book
	Engine  *orders.Engine
	Reports *report.Reports

	cfg    Config
	logger *log.Entry
}

// NewSession загружает состояние из файлов данных и связывает компоненты.
func NewSession(cfg Config, logger *log.Entry) (*Session, error) {
	if logger == nil {
		logger = log.New().WithField("component", "app")
	}
	id := uuid.NewString()
	logger = logger.WithField("session_id", id)

	storageLog := logger.WithField("component", "storage")
	products := file.NewTable(cfg.ProductsPath(), catalog.ProductFields, storageLog)
	customers := file.NewTable(cfg.CustomersPath(), catalog.CustomerFields, storageLog)
	ordersStore := file.NewDocuments(cfg.OrdersPath(), storageLog)

	cat, err := catalog.New(products, customers, logger.WithField("component", "catalog"))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	book, err := orders.NewBook(ordersStore, logger.WithField("component", "orders"))
	if err != nil {
		return nil, fmt.Errorf("open order book: %w", err)
	}

	return &Session{
		ID:      id,
		Catalog: cat,
		Book:    book,
		Engine:  orders.NewEngine(cat, book, logger.WithField("component", "order-engine")),
		Reports: report.New(cat, book),
		cfg:     cfg,
		logger:  logger,
	}, nil
}
