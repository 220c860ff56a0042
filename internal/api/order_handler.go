package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// AdvanceOrder двигает заказ на шаг вперёд (new → cooking → ready → done).
// POST /api/v1/orders/{id}/advance
func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.Status.Next)
}

// RecallOrder возвращает заказ на шаг назад (ready → cooking → new).
// POST /api/v1/orders/{id}/recall
func (h *Handler) RecallOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.Status.Prev)
}

// DoneOrder завершает заказ из любой колонки и убирает его с доски.
// POST /api/v1/orders/{id}/done
func (h *Handler) DoneOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid order id")
		return
	}

	if _, ok := h.board.Find(id); !ok {
		NotFound(w, "order not found")
		return
	}

	h.requester.RequestStatusChange(id, domain.StatusDone)

	Success(w, StatusChangeResponse{ID: id, Status: string(domain.StatusDone)})
}

// SetOrderStatus запрашивает произвольную смену статуса.
// PUT /api/v1/orders/{id}/status
func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid order id")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		BadRequest(w, "unknown status")
		return
	}

	if _, ok := h.board.Find(id); !ok {
		NotFound(w, "order not found")
		return
	}

	h.requester.RequestStatusChange(id, status)

	Success(w, StatusChangeResponse{ID: id, Status: string(status)})
}

// transition — общий путь advance/recall: находит заказ в кэше,
// вычисляет следующий статус и запрашивает смену.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, step func(domain.Status) (domain.Status, error)) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid order id")
		return
	}

	order, ok := h.board.Find(id)
	if !ok {
		NotFound(w, "order not found")
		return
	}

	next, err := step(order.Status)
	if err != nil {
		InvalidState(w, "transition not allowed from status "+string(order.Status))
		return
	}

	h.requester.RequestStatusChange(id, next)

	Success(w, StatusChangeResponse{ID: id, Status: string(next)})
}
