package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// Store — хранилище заказов источника истины.
//
// Реализации:
//   - OrderRepo — Postgres (production)
//   - MemStore  — in-memory (разработка, тесты, demo)
type Store interface {
	// Create сохраняет новый заказ и присваивает ему номер.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID возвращает заказ по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListActive возвращает все незавершённые заказы,
	// отсортированные по времени создания (старые первыми).
	ListActive(ctx context.Context) ([]domain.Order, error)

	// UpdateStatus меняет статус заказа и ставит отметку времени.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, at time.Time) (*domain.Order, error)

	// PruneDone удаляет завершённые заказы со сменой статуса
	// раньше before. Возвращает количество удалённых.
	PruneDone(ctx context.Context, before time.Time) (int64, error)
}
