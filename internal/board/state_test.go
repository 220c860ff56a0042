package board

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

func TestState_PollSucceeded_ReplacesWholesale(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b := makeOrder("ORD-0002", domain.StationFry, domain.StatusNew, now)

	st.Apply(PollSucceeded{Orders: []domain.Order{a, b}, At: now})

	if len(st.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(st.Orders))
	}
	if st.LastPollErr != nil {
		t.Error("LastPollErr should be nil after success")
	}

	// Следующий poll без заказа b — b исчезает из видимого набора
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now.Add(10 * time.Second)})

	if len(st.Orders) != 1 || st.Orders[0].ID != a.ID {
		t.Error("poll result should replace the cache wholesale")
	}
}

func TestState_PollFailed_PreservesOrders(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	pollErr := errors.New("connection refused")
	st.Apply(PollFailed{Err: pollErr, At: now.Add(10 * time.Second)})

	if len(st.Orders) != 1 {
		t.Error("failed poll must preserve prior orders")
	}
	if !errors.Is(st.LastPollErr, pollErr) {
		t.Error("LastPollErr should record the failure")
	}

	// Следующий успешный poll полностью восстанавливает консистентность
	b := makeOrder("ORD-0002", domain.StationFry, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a, b}, At: now.Add(20 * time.Second)})

	if len(st.Orders) != 2 {
		t.Error("successful poll should restore consistency")
	}
	if st.LastPollErr != nil {
		t.Error("LastPollErr should be cleared on success")
	}
}

func TestState_UpdateRequested_Optimistic(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	at := now.Add(time.Minute)
	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusCooking, At: at})

	if st.Orders[0].Status != domain.StatusCooking {
		t.Error("status should be applied immediately")
	}
	if st.Orders[0].StatusChangedAt == nil || !st.Orders[0].StatusChangedAt.Equal(at) {
		t.Error("StatusChangedAt should be stamped")
	}
	if st.PendingUpdates != 1 {
		t.Errorf("expected 1 pending update, got %d", st.PendingUpdates)
	}

	// Исход сетевого вызова не меняет заказ: при ошибке правка
	// сохраняется, согласование — следующим poll-ом
	st.Apply(UpdateSettled{OrderID: a.ID, Status: domain.StatusCooking, Err: errors.New("timeout")})

	if st.Orders[0].Status != domain.StatusCooking {
		t.Error("failed update call must not roll back the local change")
	}
	if st.PendingUpdates != 0 {
		t.Errorf("expected 0 pending updates, got %d", st.PendingUpdates)
	}
}

func TestState_UpdateRequested_Idempotent(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	first := now.Add(time.Minute)
	second := now.Add(2 * time.Minute)

	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusCooking, At: first})
	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusCooking, At: second})

	if st.Orders[0].Status != domain.StatusCooking {
		t.Error("status should remain cooking")
	}
	if !st.Orders[0].StatusChangedAt.Equal(second) {
		t.Error("repeated request should update only the timestamp")
	}
}

func TestState_UpdateRequested_DoneRemoves(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusReady, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusDone, At: now.Add(time.Minute)})

	if len(st.Orders) != 0 {
		t.Error("done order should leave the visible set")
	}

	// Заказ остаётся в seen-set: возврат тем же poll-ом не будит сигнал
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now.Add(2 * time.Minute)})

	if st.PendingAlerts() != 0 {
		t.Error("re-appearing done order must not trigger an alert")
	}
}

func TestState_StalePollRevertsOptimisticEdit(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	// Оптимистичная правка
	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusCooking, At: now.Add(time.Second)})
	if st.Orders[0].Status != domain.StatusCooking {
		t.Fatal("optimistic edit should apply")
	}

	// Устаревший poll (снимок до правки) приходит после неё
	// и молча откатывает правку: принятая гонка
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now.Add(2 * time.Second)})

	if st.Orders[0].Status != domain.StatusNew {
		t.Error("stale poll must replace the optimistic edit (accepted race)")
	}
}

func TestState_NewTicketAlerts(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	b := makeOrder("ORD-0002", domain.StationFry, domain.StatusNew, now)

	// Первый poll: все заказы новые
	st.Apply(PollSucceeded{Orders: []domain.Order{a, b}, At: now})
	if st.PendingAlerts() != 2 {
		t.Fatalf("expected 2 alerts on first poll, got %d", st.PendingAlerts())
	}
	st.Apply(AlertsDrained{})

	// Тот же набор дважды подряд — ничего
	st.Apply(PollSucceeded{Orders: []domain.Order{a, b}, At: now.Add(10 * time.Second)})
	if st.PendingAlerts() != 0 {
		t.Errorf("unchanged set must not trigger alerts, got %d", st.PendingAlerts())
	}

	// {A,B} → {A,B,C}: сигнал ровно для C
	c := makeOrder("ORD-0003", domain.StationSalad, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a, b, c}, At: now.Add(20 * time.Second)})

	if st.PendingAlerts() != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", st.PendingAlerts())
	}
	if st.alerts[0].OrderID != c.ID || st.alerts[0].Number != "ORD-0003" {
		t.Error("alert should be for order C")
	}
}

func TestState_AlertsDisabled_NoEnqueue(t *testing.T) {
	st := NewState()
	now := time.Now()

	st.Apply(AlertsToggled{Enabled: false})

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	if st.PendingAlerts() != 0 {
		t.Error("disabled alerts must not enqueue")
	}

	// seen-set всё равно обновляется: после включения сигнала
	// старые заказы не считаются новыми
	st.Apply(AlertsToggled{Enabled: true})
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now.Add(10 * time.Second)})

	if st.PendingAlerts() != 0 {
		t.Error("orders seen while disabled must not alert after enabling")
	}
}

func TestState_AlertsToggledOff_ClearsQueue(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	if st.PendingAlerts() != 1 {
		t.Fatal("expected pending alert")
	}

	st.Apply(AlertsToggled{Enabled: false})

	if st.PendingAlerts() != 0 {
		t.Error("disabling alerts should clear the pending queue")
	}
}

func TestState_FilterChanged(t *testing.T) {
	st := NewState()

	st.Apply(FilterChanged{Station: domain.StationFry, Query: "tender"})

	if st.Filter.Station != domain.StationFry || st.Filter.Query != "tender" {
		t.Errorf("unexpected filter: %+v", st.Filter)
	}
}

func TestState_Clone_Isolated(t *testing.T) {
	st := NewState()
	now := time.Now()

	a := makeOrder("ORD-0001", domain.StationGrill, domain.StatusNew, now)
	st.Apply(PollSucceeded{Orders: []domain.Order{a}, At: now})

	snap := st.Clone()

	// Мутация оригинала не видна в копии
	st.Apply(UpdateRequested{OrderID: a.ID, Status: domain.StatusCooking, At: now.Add(time.Second)})

	if snap.Orders[0].Status != domain.StatusNew {
		t.Error("clone should not observe later mutations")
	}
}

func TestState_UnknownOrderUpdate_Ignored(t *testing.T) {
	st := NewState()
	now := time.Now()

	st.Apply(UpdateRequested{OrderID: uuid.New(), Status: domain.StatusCooking, At: now})

	if len(st.Orders) != 0 {
		t.Error("update of unknown order should not create orders")
	}
}
