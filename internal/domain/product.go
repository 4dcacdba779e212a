package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога.
type Product struct {
	// ID — уникальный целочисленный ключ, выдаётся каталогом.
	ID int
	// Name — название товара.
	Name string
	// Price — цена за единицу; денежные значения храним как decimal,
	// чтобы избежать накопления ошибок плавающей точки.
	Price decimal.Decimal
	// Stock — остаток на складе. Не уходит в минус: проверка выполняется
	// до списания, а не после.
	Stock int
}

// ProductUpdate задаёт частичное обновление товара: nil-поле остаётся без изменений.
type ProductUpdate struct {
	Name  *string
	Price *decimal.Decimal
	Stock *int
}

// Empty сообщает, что обновление не меняет ни одного поля.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Stock == nil
}
