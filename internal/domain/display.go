package domain

// EntityKind перечисляет виды сущностей, выводимых терминальным слоем.
type EntityKind int

const (
	KindProduct EntityKind = iota
	KindCustomer
	KindOrder
)

// DisplayColumns возвращает заголовки таблицы для вида сущности.
// Явная схема на каждый вид вместо инспекции типа во время выполнения.
func DisplayColumns(kind EntityKind) []string {
	switch kind {
	case KindProduct:
		return []string{"ID", "Name", "Price", "Stock"}
	case KindCustomer:
		return []string{"ID", "Name", "Email"}
	case KindOrder:
		return []string{"Product", "Qty", "Unit price", "Subtotal"}
	default:
		return nil
	}
}
