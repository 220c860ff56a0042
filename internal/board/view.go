package board

import (
	"time"

	"github.com/shaiso/KDS/internal/domain"
)

// Ticket — заказ, подготовленный к отображению: заказ плюс
// производные от wall-clock поля.
type Ticket struct {
	Order domain.Order

	// Elapsed — возраст заказа на момент построения представления.
	Elapsed time.Duration

	// Urgency — уровень срочности для подсветки.
	Urgency Urgency
}

// View — представление доски для клиентов.
//
// Срочность — функция wall-clock, а не данных, поэтому представление
// строится заново на каждое чтение: клиенту достаточно периодически
// перечитывать доску, чтобы подсветка оставалась актуальной.
type View struct {
	New     []Ticket
	Cooking []Ticket
	Ready   []Ticket

	// Station, Query — фильтр, по которому построено представление.
	Station domain.Station
	Query   string

	// Loading — данных от источника ещё не было.
	Loading bool

	// Stale — последний poll не удался, данные могут быть устаревшими.
	Stale bool

	// LastPollAt — время последнего poll-а.
	LastPollAt time.Time

	// AlertsEnabled — включён ли звуковой сигнал.
	AlertsEnabled bool

	// PendingAlerts — количество недоставленных уведомлений.
	PendingAlerts int
}

// BuildView строит представление доски из состояния.
// Чистая функция от (state, filter, thresholds, now).
func BuildView(st State, f Filter, th Thresholds, now time.Time) View {
	lanes := Classify(st.Orders, f)

	return View{
		New:           buildTickets(lanes.New, th, now),
		Cooking:       buildTickets(lanes.Cooking, th, now),
		Ready:         buildTickets(lanes.Ready, th, now),
		Station:       f.Station,
		Query:         f.Query,
		Loading:       st.LastPollAt.IsZero(),
		Stale:         st.LastPollErr != nil,
		LastPollAt:    st.LastPollAt,
		AlertsEnabled: st.AlertsEnabled,
		PendingAlerts: st.PendingAlerts(),
	}
}

func buildTickets(orders []domain.Order, th Thresholds, now time.Time) []Ticket {
	tickets := make([]Ticket, len(orders))
	for i, o := range orders {
		elapsed := o.Age(now)
		tickets[i] = Ticket{
			Order:   o,
			Elapsed: elapsed,
			Urgency: ClassifyUrgency(elapsed, th),
		}
	}
	return tickets
}
