// KDS Orderd — эталонный источник заказов.
//
// Orderd:
//   - Принимает заказы (intake) и присваивает им номера
//   - Отдаёт список активных заказов для опроса доской
//   - Меняет статусы по запросам доски
//   - Публикует события заказов в RabbitMQ
//   - По ночному cron-у убирает старые завершённые заказы
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

	"github.com/shaiso/KDS/internal/mq"
	"github.com/shaiso/KDS/internal/orderd"
	"github.com/shaiso/KDS/internal/repo"
	"github.com/shaiso/KDS/internal/telemetry"
)

var startTime = time.Now()

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting kds-orderd")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Хранилище: Postgres если DB_URL задан, иначе in-memory
	var store repo.Store
	if os.Getenv("DB_URL") != "" {
		pool, err := repo.NewPool(ctx)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("database connected")

		store = repo.NewOrderRepo(pool)
	} else {
		logger.Info("DB_URL not set, using in-memory store")
		store = repo.NewMemStore()
	}

	// Demo-наполнение
	if os.Getenv("DEMO_SEED") == "true" {
		if err := orderd.Seed(ctx, store, logger); err != nil {
			logger.Error("failed to seed demo orders", "error", err)
			os.Exit(1)
		}
	}

	// RabbitMQ: события order.created / order.status_changed.
	// Недоступный брокер не мешает работе API.
	var publisher *mq.Publisher
	mqConn, err := mq.NewConnection(mq.DefaultURL(), logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, events disabled", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Ночная уборка завершённых заказов
	sweeper, err := orderd.NewSweeper(orderd.SweeperConfig{
		Store:     store,
		Logger:    logger,
		CronExpr:  os.Getenv("CLEANUP_CRON"),
		Retention: envDuration(logger, "CLEANUP_RETENTION", 0),
	})
	if err != nil {
		logger.Error("invalid cleanup configuration", "error", err)
		os.Exit(1)
	}
	go sweeper.Run(ctx)

	// HTTP: health, metrics и API источника
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	handler := orderd.NewHandler(orderd.Config{
		Store:     store,
		Publisher: publisher,
		Logger:    logger,
	})
	handler.RegisterRoutes(mux)

	addr := ":8081"
	if v := os.Getenv("ORDERD_PORT"); v != "" {
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

	logger.Info("kds-orderd stopped")
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
