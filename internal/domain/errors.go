package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если покупатель не найден в каталоге.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidLineInput — нечисловой идентификатор товара или количество,
	// либо неположительное количество в строке заказа.
	ErrInvalidLineInput = errors.New("invalid line input")
	// ErrInsufficientStock — запрошенное количество превышает остаток на складе.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderEmpty — запрос заказа без единой позиции.
	ErrOrderEmpty = errors.New("order must contain at least one line")
)

// IsOrderRejection проверяет, относится ли ошибка к отказам движка заказов.
// Все отказы восстановимы: заказ отклоняется целиком, сессия продолжается.
func IsOrderRejection(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInvalidLineInput) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrOrderEmpty)
}
