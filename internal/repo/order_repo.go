package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/KDS/internal/domain"
)

// OrderRepo — Postgres-хранилище заказов.
//
// Номера заказов выдаёт последовательность order_numbers,
// формат "ORD-%04d".
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepo создаёт новый OrderRepo.
func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create сохраняет заказ и присваивает ему номер.
func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	var seq int64
	if err := r.pool.QueryRow(ctx, "SELECT nextval('order_numbers')").Scan(&seq); err != nil {
		return fmt.Errorf("next order number: %w", err)
	}
	order.Number = fmt.Sprintf("ORD-%04d", seq)

	query := `
		INSERT INTO orders (id, number, type, station, status, items, note,
		                    table_number, customer_name, created_at, status_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.pool.Exec(ctx, query,
		order.ID,
		order.Number,
		order.Type,
		order.Station,
		order.Status,
		itemsJSON,
		nullString(order.Note),
		nullString(order.TableNumber),
		nullString(order.CustomerName),
		order.CreatedAt,
		order.StatusChangedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID возвращает заказ по ID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, number, type, station, status, items, note,
		       table_number, customer_name, created_at, status_changed_at
		FROM orders
		WHERE id = $1
	`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

// ListActive возвращает незавершённые заказы, старые первыми.
func (r *OrderRepo) ListActive(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, number, type, station, status, items, note,
		       table_number, customer_name, created_at, status_changed_at
		FROM orders
		WHERE status <> 'done'
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateStatus меняет статус заказа.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, at time.Time) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidState
	}

	query := `
		UPDATE orders
		SET status = $2, status_changed_at = $3
		WHERE id = $1
		RETURNING id, number, type, station, status, items, note,
		          table_number, customer_name, created_at, status_changed_at
	`
	return scanOrder(r.pool.QueryRow(ctx, query, id, status, at))
}

// PruneDone удаляет завершённые заказы старше before.
func (r *OrderRepo) PruneDone(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM orders
		WHERE status = 'done' AND status_changed_at < $1
	`
	result, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("prune done orders: %w", err)
	}
	return result.RowsAffected(), nil
}

// scanOrder сканирует одну строку в Order.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	var note *string
	var tableNumber *string
	var customerName *string

	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.Type,
		&order.Station,
		&order.Status,
		&itemsJSON,
		&note,
		&tableNumber,
		&customerName,
		&order.CreatedAt,
		&order.StatusChangedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if itemsJSON != nil {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}

	if note != nil {
		order.Note = *note
	}
	if tableNumber != nil {
		order.TableNumber = *tableNumber
	}
	if customerName != nil {
		order.CustomerName = *customerName
	}

	return &order, nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
