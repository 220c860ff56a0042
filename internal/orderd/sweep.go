package orderd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shaiso/KDS/internal/repo"
	"github.com/shaiso/KDS/internal/telemetry"
)

// Значения по умолчанию для уборки.
const (
	DefaultSweepCron = "0 4 * * *" // каждый день в 04:00
	DefaultRetention = 24 * time.Hour
)

// cronParser — парсер cron-выражений (стандартные 5 полей).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Sweeper периодически удаляет завершённые заказы старше окна хранения,
// чтобы активный список не рос бесконечно.
type Sweeper struct {
	store     repo.Store
	logger    *slog.Logger
	schedule  cron.Schedule
	retention time.Duration
}

// SweeperConfig — конфигурация Sweeper.
type SweeperConfig struct {
	Store     repo.Store
	Logger    *slog.Logger
	CronExpr  string        // default: "0 4 * * *"
	Retention time.Duration // default: 24h
}

// NewSweeper создаёт Sweeper. Ошибка — невалидное cron-выражение.
func NewSweeper(cfg SweeperConfig) (*Sweeper, error) {
	expr := cfg.CronExpr
	if expr == "" {
		expr = DefaultSweepCron
	}

	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}

	retention := cfg.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &Sweeper{
		store:     cfg.Store,
		logger:    cfg.Logger,
		schedule:  schedule,
		retention: retention,
	}, nil
}

// Run крутит цикл уборки до отмены контекста.
// Запускается в отдельной горутине.
func (s *Sweeper) Run(ctx context.Context) {
	for {
		next := s.schedule.Next(time.Now())
		s.logger.Debug("next sweep scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("sweep failed", "error", err)
		}
	}
}

// Sweep выполняет одну уборку: удаляет заказы, завершённые раньше
// границы окна хранения.
func (s *Sweeper) Sweep(ctx context.Context) error {
	before := time.Now().Add(-s.retention)

	pruned, err := s.store.PruneDone(ctx, before)
	if err != nil {
		return fmt.Errorf("prune done orders: %w", err)
	}

	telemetry.OrdersPruned.Add(float64(pruned))
	s.logger.Info("sweep completed", "pruned", pruned, "before", before)
	return nil
}
