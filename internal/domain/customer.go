package domain

// Customer описывает покупателя.
type Customer struct {
	// ID — уникальный целочисленный ключ, выдаётся каталогом.
	ID int
	// Name — имя покупателя.
	Name string
	// Email покупателя. Уникальность адреса не проверяется.
	Email string
}

// CustomerUpdate задаёт частичное обновление покупателя: nil-поле остаётся без изменений.
type CustomerUpdate struct {
	Name  *string
	Email *string
}

// Empty сообщает, что обновление не меняет ни одного поля.
func (u CustomerUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil
}
