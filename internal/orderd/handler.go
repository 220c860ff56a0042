package orderd

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/api"
	"github.com/shaiso/KDS/internal/domain"
	"github.com/shaiso/KDS/internal/mq"
	"github.com/shaiso/KDS/internal/repo"
	"github.com/shaiso/KDS/internal/telemetry"
)

// Handler — HTTP API источника заказов.
type Handler struct {
	store     repo.Store
	publisher *mq.Publisher
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Store     repo.Store
	Publisher *mq.Publisher // опционально: nil → события только в лог
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		store:     cfg.Store,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
	}
}

// RegisterRoutes регистрирует маршруты источника заказов.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := api.Chain(
		api.Recovery(h.logger),
		api.Logging(h.logger),
	)

	mux.Handle("GET /api/v1/orders", chain(http.HandlerFunc(h.ListOrders)))
	mux.Handle("POST /api/v1/orders", chain(http.HandlerFunc(h.CreateOrder)))
	mux.Handle("GET /api/v1/orders/{id}", chain(http.HandlerFunc(h.GetOrder)))
	mux.Handle("PUT /api/v1/orders/{id}/status", chain(http.HandlerFunc(h.UpdateOrderStatus)))
}

// ListOrders возвращает все незавершённые заказы, старые первыми.
// GET /api/v1/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListActive(r.Context())
	if api.HandleRepoError(w, h.logger, err, "") {
		return
	}

	api.List(w, orders, len(orders))
}

// CreateOrder принимает новый заказ. Номер присваивает хранилище.
// POST /api/v1/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid request body")
		return
	}

	order, msg := req.ToDomain()
	if msg != "" {
		api.BadRequest(w, msg)
		return
	}

	if err := h.store.Create(r.Context(), order); err != nil {
		api.InternalError(w, h.logger, err)
		return
	}

	telemetry.OrdersCreated.Inc()
	h.logger.Info("order created",
		"order_id", order.ID,
		"number", order.Number,
		"station", order.Station,
	)

	h.publishCreated(r, order)

	api.Created(w, order)
}

// GetOrder возвращает заказ по ID.
// GET /api/v1/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.BadRequest(w, "invalid order id")
		return
	}

	order, err := h.store.GetByID(r.Context(), id)
	if api.HandleRepoError(w, h.logger, err, "order not found") {
		return
	}

	api.Success(w, order)
}

// UpdateOrderStatus меняет статус заказа.
//
// Дисплею доверяем: принимается любой известный статус, политика
// допустимых переходов живёт на стороне доски.
// PUT /api/v1/orders/{id}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.BadRequest(w, "invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.BadRequest(w, "invalid request body")
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		api.BadRequest(w, "unknown status")
		return
	}

	order, err := h.store.UpdateStatus(r.Context(), id, status, time.Now())
	if api.HandleRepoError(w, h.logger, err, "order not found") {
		return
	}

	telemetry.StatusUpdates.WithLabelValues(string(status)).Inc()
	h.logger.Info("order status updated",
		"order_id", order.ID,
		"number", order.Number,
		"status", order.Status,
	)

	h.publishStatusChanged(r, order)

	api.Success(w, order)
}

// publishCreated публикует событие order.created, если брокер подключён.
func (h *Handler) publishCreated(r *http.Request, order *domain.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderCreated(r.Context(), order); err != nil {
		// Публикация не влияет на ответ: событие вспомогательное
		h.logger.Warn("failed to publish order.created",
			"order_id", order.ID,
			"error", err,
		)
	}
}

// publishStatusChanged публикует событие order.status_changed.
func (h *Handler) publishStatusChanged(r *http.Request, order *domain.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderStatusChanged(r.Context(), order); err != nil {
		h.logger.Warn("failed to publish order.status_changed",
			"order_id", order.ID,
			"error", err,
		)
	}
}
