package board

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
	"github.com/shaiso/KDS/internal/telemetry"
)

// Board — владелец состояния доски.
//
// Одна горутина-цикл владеет State и сериализует все мутации через
// канал команд: Go-вариант однопоточного event loop. Чтения — тоже
// команды, возвращающие копию состояния, поэтому читатели никогда
// не видят последующих мутаций.
type Board struct {
	state      State
	thresholds Thresholds
	logger     *slog.Logger

	cmds chan func(st *State)
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Config — конфигурация Board.
type Config struct {
	// Thresholds — пороги срочности (default: 420s/720s).
	Thresholds Thresholds

	// Logger — логгер (default: slog.Default).
	Logger *slog.Logger
}

// New создаёт Board.
func New(cfg Config) *Board {
	th := cfg.Thresholds
	if th.Warn <= 0 || th.Late <= 0 {
		th = DefaultThresholds()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Board{
		state:      NewState(),
		thresholds: th,
		logger:     logger,
		cmds:       make(chan func(st *State)),
		done:       make(chan struct{}),
	}
}

// Start запускает event loop.
func (b *Board) Start(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.loop(ctx)
	}()
}

// Stop останавливает event loop и дожидается его завершения.
func (b *Board) Stop() {
	b.once.Do(func() { close(b.done) })
	b.wg.Wait()
}

// loop — цикл владельца состояния.
// При отмене контекста закрывает done, чтобы не блокировать вызывающих.
func (b *Board) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.once.Do(func() { close(b.done) })
			return
		case <-b.done:
			return
		case fn := <-b.cmds:
			before := b.state.PendingAlerts()
			fn(&b.state)
			if after := b.state.PendingAlerts(); after > before {
				telemetry.BoardAlerts.Add(float64(after - before))
			}
			telemetry.BoardOrders.Set(float64(len(b.state.Orders)))
		}
	}
}

// do выполняет fn внутри event loop.
// Возвращает false, если доска уже остановлена.
func (b *Board) do(fn func(st *State)) bool {
	select {
	case b.cmds <- fn:
		return true
	case <-b.done:
		return false
	}
}

// Dispatch применяет событие к состоянию доски.
func (b *Board) Dispatch(ev Event) {
	b.do(func(st *State) {
		st.Apply(ev)
	})
}

// Snapshot возвращает копию текущего состояния.
// После остановки доски возвращает нулевое состояние.
func (b *Board) Snapshot() State {
	ch := make(chan State, 1)
	if !b.do(func(st *State) { ch <- st.Clone() }) {
		return State{}
	}
	select {
	case st := <-ch:
		return st
	case <-b.done:
		return State{}
	}
}

// Find возвращает заказ из кэша по ID.
func (b *Board) Find(id uuid.UUID) (domain.Order, bool) {
	st := b.Snapshot()
	for _, o := range st.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// DrainAlerts возвращает накопленные уведомления и очищает очередь.
// Каждое уведомление доставляется не более одного раза.
func (b *Board) DrainAlerts() []Alert {
	ch := make(chan []Alert, 1)
	ok := b.do(func(st *State) {
		ch <- append([]Alert(nil), st.alerts...)
		st.Apply(AlertsDrained{})
	})
	if !ok {
		return nil
	}
	select {
	case alerts := <-ch:
		return alerts
	case <-b.done:
		return nil
	}
}

// View возвращает представление доски с текущим фильтром состояния.
func (b *Board) View(now time.Time) View {
	st := b.Snapshot()
	return BuildView(st, st.Filter, b.thresholds, now)
}

// ViewFiltered возвращает представление с фильтром, переопределённым
// на один запрос (фильтр состояния не меняется).
func (b *Board) ViewFiltered(f Filter, now time.Time) View {
	return BuildView(b.Snapshot(), f, b.thresholds, now)
}

// Thresholds возвращает пороги срочности доски.
func (b *Board) Thresholds() Thresholds {
	return b.thresholds
}
