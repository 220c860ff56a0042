package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// MemStore — in-memory хранилище заказов.
//
// Используется для разработки, тестов и demo-режима. Порядок вставки
// сохраняется, наружу отдаются копии.
type MemStore struct {
	mu         sync.RWMutex
	orders     []*domain.Order
	byID       map[uuid.UUID]*domain.Order
	nextNumber int64
}

// NewMemStore создаёт пустой MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		byID:       make(map[uuid.UUID]*domain.Order),
		nextNumber: 1,
	}
}

// Create сохраняет заказ и присваивает ему номер.
func (s *MemStore) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[order.ID]; exists {
		return ErrAlreadyExists
	}

	order.Number = fmt.Sprintf("ORD-%04d", s.nextNumber)
	s.nextNumber++

	stored := *order
	s.orders = append(s.orders, &stored)
	s.byID[stored.ID] = &stored
	return nil
}

// GetByID возвращает копию заказа по ID.
func (s *MemStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := *order
	return &out, nil
}

// ListActive возвращает незавершённые заказы, старые первыми.
// При равном времени создания сохраняется порядок вставки.
func (s *MemStore) ListActive(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.Order
	for _, order := range s.orders {
		if order.IsActive() {
			active = append(active, *order)
		}
	}

	// Вставки упорядочены по времени создания в обычном потоке;
	// demo seed может вставлять вразнобой, поэтому сортируем явно
	sortByCreatedAt(active)

	return active, nil
}

// UpdateStatus меняет статус заказа.
func (s *MemStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status, at time.Time) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidState
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	order.SetStatus(status, at)

	out := *order
	return &out, nil
}

// PruneDone удаляет завершённые заказы старше before.
func (s *MemStore) PruneDone(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*domain.Order
	var pruned int64

	for _, order := range s.orders {
		if order.Status.IsTerminal() &&
			order.StatusChangedAt != nil &&
			order.StatusChangedAt.Before(before) {
			delete(s.byID, order.ID)
			pruned++
			continue
		}
		kept = append(kept, order)
	}

	s.orders = kept
	return pruned, nil
}

// sortByCreatedAt — стабильная сортировка по времени создания.
func sortByCreatedAt(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
