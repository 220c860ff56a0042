package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/domain"
)

// GetBoard возвращает представление доски.
// GET /api/v1/board?station=...&q=...
//
// Query-параметры переопределяют фильтр состояния на один запрос.
// Ошибки источника сюда не доходят: отдаётся текущее (возможно,
// устаревшее) состояние с флагом stale.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	st := h.board.Snapshot()
	filter := st.Filter

	q := r.URL.Query()
	if q.Has("station") {
		station, ok := domain.ParseStation(q.Get("station"))
		if !ok {
			BadRequest(w, "unknown station")
			return
		}
		filter.Station = station
	}
	if q.Has("q") {
		filter.Query = q.Get("q")
	}

	view := h.board.ViewFiltered(filter, time.Now())
	Success(w, BoardFromView(view))
}

// SetFilters меняет фильтр доски.
// PUT /api/v1/filters
func (h *Handler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req SetFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	station, ok := domain.ParseStation(req.Station)
	if !ok {
		BadRequest(w, "unknown station")
		return
	}

	h.board.Dispatch(board.FilterChanged{Station: station, Query: req.Query})

	Success(w, FiltersResponse{Station: string(station), Query: req.Query})
}
