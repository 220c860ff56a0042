package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики доски (kds-board).
var (
	// BoardPolls — количество poll-ов источника по результату
	// (success/failure).
	BoardPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kds_board_polls_total",
		Help: "Total polls of the order source by result",
	}, []string{"result"})

	// BoardStatusPushes — количество вызовов update endpoint
	// по результату (success/failure).
	BoardStatusPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kds_board_status_pushes_total",
		Help: "Total status update calls to the order source by result",
	}, []string{"result"})

	// BoardOrders — текущее количество заказов в кэше доски.
	BoardOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kds_board_orders",
		Help: "Orders currently cached on the board",
	})

	// BoardAlerts — количество поставленных в очередь уведомлений.
	BoardAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kds_board_alerts_total",
		Help: "Total new-ticket alerts enqueued",
	})
)

// Метрики источника заказов (kds-orderd).
var (
	// OrdersCreated — количество принятых заказов.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kds_orderd_orders_created_total",
		Help: "Total orders created via intake",
	})

	// StatusUpdates — количество применённых смен статуса.
	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kds_orderd_status_updates_total",
		Help: "Total status updates applied by new status",
	}, []string{"status"})

	// OrdersPruned — количество заказов, удалённых sweep-ом.
	OrdersPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kds_orderd_orders_pruned_total",
		Help: "Total done orders pruned by the close-of-day sweep",
	})
)
