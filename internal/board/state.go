package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// Event — событие, меняющее состояние доски.
//
// Все мутации состояния проходят через State.Apply: по одной функции
// перехода на каждый тип события. Это делает гонки синхронизации
// (например, затирание оптимистичной правки устаревшим poll-ом)
// явными и проверяемыми в тестах.
type Event interface {
	event()
}

// PollSucceeded — успешный poll источника.
// Кэш заказов заменяется целиком: last-writer-wins поверх любых
// неподтверждённых оптимистичных правок, без слияния.
type PollSucceeded struct {
	Orders []domain.Order
	At     time.Time
}

// PollFailed — неуспешный poll (сетевая ошибка, не-2xx, таймаут).
// Прежнее состояние сохраняется.
type PollFailed struct {
	Err error
	At  time.Time
}

// UpdateRequested — запрошена смена статуса заказа.
// Применяется к локальному кэшу немедленно (оптимистично).
type UpdateRequested struct {
	OrderID uuid.UUID
	Status  domain.Status
	At      time.Time
}

// UpdateSettled — сетевой вызов смены статуса завершился.
// Несёт только исход: при ошибке локальная правка сохраняется
// (без отката), согласование — только следующим poll-ом.
type UpdateSettled struct {
	OrderID uuid.UUID
	Status  domain.Status
	Err     error
}

// FilterChanged — изменён фильтр доски.
type FilterChanged struct {
	Station domain.Station
	Query   string
}

// AlertsToggled — включён/выключен звуковой сигнал.
type AlertsToggled struct {
	Enabled bool
}

// AlertsDrained — накопленные уведомления забраны клиентом.
type AlertsDrained struct{}

func (PollSucceeded) event()   {}
func (PollFailed) event()      {}
func (UpdateRequested) event() {}
func (UpdateSettled) event()   {}
func (FilterChanged) event()   {}
func (AlertsToggled) event()   {}
func (AlertsDrained) event()   {}

// State — состояние доски.
//
// Вся мутабельность живёт здесь; единственный владелец — event loop
// в Board, поэтому блокировки не нужны.
type State struct {
	// Orders — кэш заказов в порядке получения от источника.
	Orders []domain.Order

	// Filter — текущий фильтр доски.
	Filter Filter

	// AlertsEnabled — включён ли звуковой сигнал.
	AlertsEnabled bool

	// LastPollAt — время последнего poll-а (успешного или нет).
	LastPollAt time.Time

	// LastPollErr — ошибка последнего poll-а, nil при успехе.
	LastPollErr error

	// PendingUpdates — количество сетевых вызовов смены статуса
	// в полёте.
	PendingUpdates int

	// seen — заказы, видимые на момент предыдущего poll-а.
	seen map[uuid.UUID]struct{}

	// alerts — очередь неотправленных уведомлений.
	alerts []Alert
}

// NewState создаёт начальное состояние доски.
func NewState() State {
	return State{
		Filter:        Filter{Station: domain.StationAll},
		AlertsEnabled: true,
		seen:          make(map[uuid.UUID]struct{}),
	}
}

// Apply применяет событие к состоянию.
func (st *State) Apply(ev Event) {
	switch e := ev.(type) {
	case PollSucceeded:
		// Уведомления — до замены кэша: diff против seen-set
		// предыдущего poll-а.
		if st.AlertsEnabled {
			for _, o := range diffNew(st.seen, e.Orders) {
				st.alerts = append(st.alerts, Alert{
					OrderID: o.ID,
					Number:  o.Number,
					At:      e.At,
				})
			}
		}
		st.seen = rebuildSeen(e.Orders)

		// Замена целиком: устаревший poll, пришедший после
		// оптимистичной правки, молча её откатит. Принятая гонка.
		st.Orders = e.Orders
		st.LastPollAt = e.At
		st.LastPollErr = nil

	case PollFailed:
		st.LastPollAt = e.At
		st.LastPollErr = e.Err

	case UpdateRequested:
		st.PendingUpdates++
		for i := range st.Orders {
			if st.Orders[i].ID != e.OrderID {
				continue
			}
			st.Orders[i].SetStatus(e.Status, e.At)
			break
		}
		if e.Status.IsTerminal() {
			st.removeOrder(e.OrderID)
		}

	case UpdateSettled:
		if st.PendingUpdates > 0 {
			st.PendingUpdates--
		}

	case FilterChanged:
		st.Filter = Filter{Station: e.Station, Query: e.Query}

	case AlertsToggled:
		st.AlertsEnabled = e.Enabled
		if !e.Enabled {
			st.alerts = nil
		}

	case AlertsDrained:
		st.alerts = nil
	}
}

// PendingAlerts возвращает количество неотправленных уведомлений.
func (st *State) PendingAlerts() int {
	return len(st.alerts)
}

// Clone возвращает копию состояния, безопасную для чтения
// вне event loop.
func (st *State) Clone() State {
	out := *st
	out.Orders = append([]domain.Order(nil), st.Orders...)
	out.alerts = append([]Alert(nil), st.alerts...)
	out.seen = make(map[uuid.UUID]struct{}, len(st.seen))
	for id := range st.seen {
		out.seen[id] = struct{}{}
	}
	return out
}

// removeOrder убирает заказ из видимого набора.
// Заказ остаётся в seen-set: если следующий poll вернёт его снова,
// повторного уведомления не будет.
func (st *State) removeOrder(id uuid.UUID) {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			st.Orders = append(st.Orders[:i], st.Orders[i+1:]...)
			return
		}
	}
}
