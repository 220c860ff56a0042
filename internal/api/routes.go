package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API доски.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Board
	mux.Handle("GET /api/v1/board", chain(http.HandlerFunc(h.GetBoard)))
	mux.Handle("PUT /api/v1/filters", chain(http.HandlerFunc(h.SetFilters)))

	// Orders
	mux.Handle("POST /api/v1/orders/{id}/advance", chain(http.HandlerFunc(h.AdvanceOrder)))
	mux.Handle("POST /api/v1/orders/{id}/recall", chain(http.HandlerFunc(h.RecallOrder)))
	mux.Handle("POST /api/v1/orders/{id}/done", chain(http.HandlerFunc(h.DoneOrder)))
	mux.Handle("PUT /api/v1/orders/{id}/status", chain(http.HandlerFunc(h.SetOrderStatus)))

	// Alerts
	mux.Handle("GET /api/v1/alerts", chain(http.HandlerFunc(h.DrainAlerts)))
	mux.Handle("PUT /api/v1/alerts/enabled", chain(http.HandlerFunc(h.SetAlertsEnabled)))
}
