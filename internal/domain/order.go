package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order — заказ кухни.
//
// Заказы создаются внешним источником (order source); доска никогда
// не создаёт заказы, только запрашивает смену статуса. Доска держит
// read-mostly копию заказов плюс оптимистичные локальные правки,
// ожидающие подтверждения следующим poll.
type Order struct {
	// ID — уникальный идентификатор заказа.
	ID uuid.UUID `json:"id"`

	// Number — человекочитаемый номер заказа, например "ORD-0042".
	Number string `json:"number"`

	// Type — способ выдачи (dine_in, takeout, delivery).
	Type FulfillmentType `json:"type"`

	// Station — цех, в который маршрутизируется заказ.
	Station Station `json:"station"`

	// Status — текущий статус жизненного цикла.
	Status Status `json:"status"`

	// Items — позиции заказа в порядке создания.
	// Неизменяемы после получения заказа.
	Items []LineItem `json:"items"`

	// Note — произвольный комментарий к заказу.
	Note string `json:"note,omitempty"`

	// TableNumber — идентификатор стола (для dine_in).
	TableNumber string `json:"table_number,omitempty"`

	// CustomerName — имя клиента (для takeout/delivery).
	CustomerName string `json:"customer_name,omitempty"`

	// CreatedAt — время создания заказа.
	CreatedAt time.Time `json:"created_at"`

	// StatusChangedAt — время последней смены статуса.
	// Nil, если статус ещё не менялся.
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`
}

// LineItem — позиция заказа.
type LineItem struct {
	// Name — название блюда.
	Name string `json:"name"`

	// Quantity — количество.
	Quantity int `json:"quantity"`

	// Modifiers — модификаторы ("no onion", "extra cheese").
	Modifiers []string `json:"modifiers,omitempty"`

	// Station — переопределение цеха для позиции.
	// Пустое значение — позиция идёт в цех заказа.
	Station Station `json:"station,omitempty"`
}

// SetStatus меняет статус и ставит отметку времени.
// Повторная установка того же статуса обновляет только отметку.
func (o *Order) SetStatus(s Status, at time.Time) {
	o.Status = s
	o.StatusChangedAt = &at
}

// Age возвращает возраст заказа относительно now.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}

// IsActive возвращает true, если заказ отображается на доске.
func (o *Order) IsActive() bool {
	return !o.Status.IsTerminal()
}
