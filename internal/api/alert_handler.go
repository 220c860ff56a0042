package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaiso/KDS/internal/board"
)

// DrainAlerts отдаёт накопленные оповещения о новых заказах и очищает
// очередь. Повторный запрос вернёт пустой список до следующего опроса.
// GET /api/v1/alerts
func (h *Handler) DrainAlerts(w http.ResponseWriter, r *http.Request) {
	alerts := h.board.DrainAlerts()
	List(w, alerts, len(alerts))
}

// SetAlertsEnabled включает или выключает звуковой сигнал.
// Выключение сбрасывает очередь оповещений.
// PUT /api/v1/alerts/enabled
func (h *Handler) SetAlertsEnabled(w http.ResponseWriter, r *http.Request) {
	var req SetAlertsEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	h.board.Dispatch(board.AlertsToggled{Enabled: req.Enabled})

	Success(w, AlertsEnabledResponse{Enabled: req.Enabled})
}
