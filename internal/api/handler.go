package api

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/board"
	"github.com/shaiso/KDS/internal/domain"
)

// StatusRequester — запрашивает смену статуса заказа у источника.
// Реализуется syncer-ом; вызов оптимистичный и не возвращает ошибку:
// исход сетевого вызова пользователю не показывается.
type StatusRequester interface {
	RequestStatusChange(orderID uuid.UUID, status domain.Status)
}

// Handler — главный обработчик API доски с зависимостями.
type Handler struct {
	board     *board.Board
	requester StatusRequester
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Board     *board.Board
	Requester StatusRequester
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		board:     cfg.Board,
		requester: cfg.Requester,
		logger:    cfg.Logger,
	}
}
