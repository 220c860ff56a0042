// KDS Board — сервис доски заказов для кухни.
//
// Board:
//   - Опрашивает источник заказов и держит локальный кэш
//   - Раскладывает заказы по колонкам new/cooking/ready
//   - Подкрашивает залежавшиеся заказы (warn/late пороги)
//   - Оптимистично применяет смены статусов и сверяет их опросом
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/KDS/internal/api"
	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/mq"
	"github.com/shaiso/KDS/internal/source"
	"github.com/shaiso/KDS/internal/syncer"
	"github.com/shaiso/KDS/internal/telemetry"
)

var startTime = time.Now()

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting kds-board")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Пороги срочности
	thresholds := board.DefaultThresholds()
	thresholds.Warn = envDuration(logger, "KDS_WARN_AFTER", thresholds.Warn)
	thresholds.Late = envDuration(logger, "KDS_LATE_AFTER", thresholds.Late)

	// Доска — единственный владелец состояния
	b := board.New(board.Config{
		Thresholds: thresholds,
		Logger:     logger,
	})
	b.Start(ctx)

	// Источник заказов
	sourceURL := os.Getenv("KDS_SOURCE_URL")
	if sourceURL == "" {
		sourceURL = "http://localhost:8081"
	}

	sc := syncer.New(syncer.Config{
		Source:         source.NewClient(sourceURL),
		Board:          b,
		PollInterval:   envDuration(logger, "KDS_POLL_INTERVAL", 0),
		RequestTimeout: envDuration(logger, "KDS_SOURCE_TIMEOUT", 0),
		Logger:         logger,
	})
	sc.Start(ctx)
	logger.Info("polling order source", "url", sourceURL)

	// RabbitMQ: события заказов подталкивают внеочередной опрос.
	// Недоступный брокер не мешает работе — остаётся чистый polling.
	mqConn, err := mq.NewConnection(mq.DefaultURL(), logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in polling-only mode", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupBoardQueue(ctx, mqConn); err != nil {
			logger.Warn("failed to setup board queue", "error", err)
		} else {
			consumer := mq.NewConsumer(mqConn, logger, mq.ConsumerConfig{
				Queue: string(mq.QueueBoardEvents),
				Handler: func(ctx context.Context, msg *mq.Delivery) error {
					sc.Nudge()
					return msg.Ack()
				},
			})

			go func() {
				if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
					logger.Error("consumer stopped", "error", err)
				}
			}()
		}
	}

	// HTTP: health, metrics и API доски
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	handler := api.NewHandler(api.Config{
		Board:     b,
		Requester: sc,
		Logger:    logger,
	})
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("BOARD_PORT"); v != "" {
		addr = ":" + v
	}

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	sc.Stop()
	b.Stop()
	logger.Info("kds-board stopped")
}

// envDuration читает duration из переменной окружения.
// Пустое или невалидное значение — fallback.
func envDuration(logger *slog.Logger, name string, fallback time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logger.Warn("invalid duration, using default", "var", name, "value", v)
		return fallback
	}
	return d
}
