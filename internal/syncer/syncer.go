package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/domain"
	"github.com/shaiso/KDS/internal/telemetry"
)

// Значения конфигурации по умолчанию.
const (
	defaultPollInterval   = 10 * time.Second
	defaultRequestTimeout = 6 * time.Second
)

// Source — операции источника заказов, нужные доске.
type Source interface {
	// ListOrders возвращает полный набор активных заказов.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus запрашивает смену статуса заказа.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
}

// Syncer синхронизирует доску с источником заказов.
//
// Один тикер управляет polling-ом; запросы смены статуса уходят
// fire-and-forget с собственным таймаутом и перекрываются с poll-ами
// независимо. Новый poll не отменяет предыдущий в полёте; каждый
// сетевой вызов обрывается только собственным таймаутом.
type Syncer struct {
	source Source
	board  *board.Board

	pollInterval   time.Duration
	requestTimeout time.Duration

	logger     *slog.Logger
	nudgeCh    chan struct{}
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Config — конфигурация Syncer.
type Config struct {
	// Source — клиент источника заказов.
	Source Source

	// Board — доска, принимающая события синхронизации.
	Board *board.Board

	// PollInterval — интервал polling-а (default: 10s).
	PollInterval time.Duration

	// RequestTimeout — таймаут одного сетевого вызова (default: 6s).
	RequestTimeout time.Duration

	// Logger — логгер (default: slog.Default).
	Logger *slog.Logger
}

// New создаёт Syncer.
func New(cfg Config) *Syncer {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Syncer{
		source:         cfg.Source,
		board:          cfg.Board,
		pollInterval:   pollInterval,
		requestTimeout: requestTimeout,
		logger:         logger,
		nudgeCh:        make(chan struct{}, 1),
	}
}

// Start запускает цикл polling-а.
func (s *Syncer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel

	s.logger.Info("starting syncer",
		"poll_interval", s.pollInterval,
		"request_timeout", s.requestTimeout,
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pollLoop(ctx)
	}()
}

// Stop останавливает polling и дожидается вызовов в полёте.
func (s *Syncer) Stop() {
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.wg.Wait()
	s.logger.Info("syncer stopped")
}

// Nudge запрашивает внеочередной poll.
// Не блокирует: если poll уже запрошен, повторный nudge схлопывается.
func (s *Syncer) Nudge() {
	select {
	case s.nudgeCh <- struct{}{}:
	default:
	}
}

// RequestStatusChange применяет смену статуса оптимистично и уходит
// с сетевым вызовом в фон.
//
// Локальная правка ставится немедленно; при ошибке вызова она
// сохраняется (без отката) — единственный путь согласования это
// следующий poll. Дедупликации гоняющихся запросов по одному заказу
// нет.
func (s *Syncer) RequestStatusChange(orderID uuid.UUID, status domain.Status) {
	now := time.Now()
	s.board.Dispatch(board.UpdateRequested{OrderID: orderID, Status: status, At: now})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
		defer cancel()

		err := s.source.UpdateStatus(ctx, orderID, status)
		s.board.Dispatch(board.UpdateSettled{OrderID: orderID, Status: status, Err: err})

		if err != nil {
			telemetry.BoardStatusPushes.WithLabelValues("failure").Inc()
			s.logger.Warn("status update failed, keeping local change",
				"order_id", orderID,
				"status", status,
				"error", err,
			)
			return
		}

		telemetry.BoardStatusPushes.WithLabelValues("success").Inc()
		s.logger.Debug("status update confirmed",
			"order_id", orderID,
			"status", status,
		)
	}()
}

// pollLoop — цикл polling-а.
func (s *Syncer) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте
	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		case <-s.nudgeCh:
			s.poll(ctx)
		}
	}
}

// poll выполняет один poll источника.
// Ошибка не фатальна: прежнее состояние доски сохраняется,
// следующая попытка — по расписанию.
func (s *Syncer) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	orders, err := s.source.ListOrders(pollCtx)
	now := time.Now()

	if err != nil {
		telemetry.BoardPolls.WithLabelValues("failure").Inc()
		s.logger.Warn("poll failed, keeping previous state", "error", err)
		s.board.Dispatch(board.PollFailed{Err: err, At: now})
		return
	}

	telemetry.BoardPolls.WithLabelValues("success").Inc()
	s.logger.Debug("poll completed", "orders", len(orders))
	s.board.Dispatch(board.PollSucceeded{Orders: orders, At: now})
}
