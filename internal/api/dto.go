package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/domain"
)

// Board DTOs

// BoardResponse — представление доски для клиентов.
type BoardResponse struct {
	New     []TicketResponse `json:"new"`
	Cooking []TicketResponse `json:"cooking"`
	Ready   []TicketResponse `json:"ready"`

	Station string `json:"station"`
	Query   string `json:"query,omitempty"`

	Loading       bool       `json:"loading"`
	Stale         bool       `json:"stale"`
	LastPollAt    *time.Time `json:"last_poll_at,omitempty"`
	AlertsEnabled bool       `json:"alerts_enabled"`
	PendingAlerts int        `json:"pending_alerts"`
}

// TicketResponse — заказ с производными полями отображения.
type TicketResponse struct {
	ID              uuid.UUID         `json:"id"`
	Number          string            `json:"number"`
	Type            string            `json:"type"`
	Station         string            `json:"station"`
	Status          string            `json:"status"`
	Items           []domain.LineItem `json:"items"`
	Note            string            `json:"note,omitempty"`
	TableNumber     string            `json:"table_number,omitempty"`
	CustomerName    string            `json:"customer_name,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	StatusChangedAt *time.Time        `json:"status_changed_at,omitempty"`
	ElapsedSec      int64             `json:"elapsed_sec"`
	Urgency         string            `json:"urgency"`
}

// BoardFromView конвертирует board.View в BoardResponse.
func BoardFromView(v board.View) BoardResponse {
	resp := BoardResponse{
		New:           ticketsFromView(v.New),
		Cooking:       ticketsFromView(v.Cooking),
		Ready:         ticketsFromView(v.Ready),
		Station:       string(v.Station),
		Query:         v.Query,
		Loading:       v.Loading,
		Stale:         v.Stale,
		AlertsEnabled: v.AlertsEnabled,
		PendingAlerts: v.PendingAlerts,
	}
	if !v.LastPollAt.IsZero() {
		at := v.LastPollAt
		resp.LastPollAt = &at
	}
	return resp
}

func ticketsFromView(tickets []board.Ticket) []TicketResponse {
	result := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		result[i] = TicketResponse{
			ID:              t.Order.ID,
			Number:          t.Order.Number,
			Type:            string(t.Order.Type),
			Station:         string(t.Order.Station),
			Status:          string(t.Order.Status),
			Items:           t.Order.Items,
			Note:            t.Order.Note,
			TableNumber:     t.Order.TableNumber,
			CustomerName:    t.Order.CustomerName,
			CreatedAt:       t.Order.CreatedAt,
			StatusChangedAt: t.Order.StatusChangedAt,
			ElapsedSec:      int64(t.Elapsed.Seconds()),
			Urgency:         string(t.Urgency),
		}
	}
	return result
}

// Filter DTOs

// SetFiltersRequest — запрос на смену фильтра доски.
type SetFiltersRequest struct {
	Station string `json:"station"`
	Query   string `json:"query"`
}

// FiltersResponse — текущий фильтр доски.
type FiltersResponse struct {
	Station string `json:"station"`
	Query   string `json:"query,omitempty"`
}

// Order DTOs

// SetStatusRequest — запрос на смену статуса заказа.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// StatusChangeResponse — подтверждение оптимистичной смены статуса.
type StatusChangeResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// Alert DTOs

// SetAlertsEnabledRequest — запрос на включение/выключение сигнала.
type SetAlertsEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// AlertsEnabledResponse — текущее состояние сигнала.
type AlertsEnabledResponse struct {
	Enabled bool `json:"enabled"`
}
