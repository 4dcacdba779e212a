package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ProductID — идентификатор товара на момент оформления.
	ProductID int
	// Name — снимок названия товара; заказ не зависит от последующих
	// переименований или удаления товара из каталога.
	Name string
	// Quantity — количество единиц, строго положительное.
	Quantity int
	// UnitPrice — снимок цены за единицу на момент оформления.
	UnitPrice decimal.Decimal
	// Subtotal = UnitPrice * Quantity, округлённый до двух знаков.
	Subtotal decimal.Decimal
}

// Order агрегирует подтверждённый заказ. Заказы неизменяемы после создания:
// операций обновления или отмены нет.
type Order struct {
	// ID — уникальный, монотонно растущий номер заказа.
	ID int
	// CustomerID ссылается на покупателя, существовавшего на момент оформления.
	CustomerID int
	// CustomerName — денормализованный снимок имени покупателя.
	CustomerName string
	// CreatedAt — момент оформления заказа.
	CreatedAt time.Time
	// Items — позиции заказа в порядке ввода.
	Items []OrderItem
	// Total — сумма Subtotal всех позиций, округлённая до двух знаков.
	Total decimal.Decimal
}

// LineRequest — сырая строка запроса на позицию заказа, как её передаёт
// терминальный слой. Разбор и проверка значений выполняются движком заказов,
// чтобы классификация некорректного ввода жила рядом с остальными проверками.
type LineRequest struct {
	ProductID string
	Quantity  string
}

// CreatedAtLayout — формат отметки времени заказа в хранимых документах.
const CreatedAtLayout = "2006-01-02 15:04:05"
