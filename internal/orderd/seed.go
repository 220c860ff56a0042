package orderd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
	"github.com/shaiso/KDS/internal/repo"
)

// Seed наполняет хранилище небольшим реалистичным набором заказов.
// Используется только в demo-режиме (DEMO_SEED=true).
func Seed(ctx context.Context, store repo.Store, logger *slog.Logger) error {
	now := time.Now()

	seedOrders := []domain.Order{
		{
			Type:    domain.FulfillmentDineIn,
			Station: domain.StationGrill,
			Status:  domain.StatusCooking,
			Items: []domain.LineItem{
				{Name: "ribeye steak", Quantity: 1, Modifiers: []string{"medium rare"}},
				{Name: "grilled vegetables", Quantity: 1},
			},
			TableNumber: "T12",
			CreatedAt:   now.Add(-9 * time.Minute),
		},
		{
			Type:    domain.FulfillmentTakeout,
			Station: domain.StationFry,
			Status:  domain.StatusNew,
			Items: []domain.LineItem{
				{Name: "chicken tenders", Quantity: 2, Modifiers: []string{"extra sauce"}},
				{Name: "fries", Quantity: 1, Modifiers: []string{"large"}},
			},
			CustomerName: "Dana",
			CreatedAt:    now.Add(-2 * time.Minute),
		},
		{
			Type:    domain.FulfillmentDelivery,
			Station: domain.StationSalad,
			Status:  domain.StatusNew,
			Items: []domain.LineItem{
				{Name: "caesar salad", Quantity: 1, Modifiers: []string{"no croutons"}},
				{Name: "lemonade", Quantity: 2, Station: domain.StationDrinks},
			},
			CustomerName: "Miguel",
			Note:         "ring doorbell twice",
			CreatedAt:    now.Add(-13 * time.Minute),
		},
		{
			Type:    domain.FulfillmentDineIn,
			Station: domain.StationDessert,
			Status:  domain.StatusReady,
			Items: []domain.LineItem{
				{Name: "cheesecake", Quantity: 1},
				{Name: "espresso", Quantity: 2, Station: domain.StationDrinks},
			},
			TableNumber: "T3",
			CreatedAt:   now.Add(-18 * time.Minute),
		},
		{
			Type:    domain.FulfillmentDineIn,
			Station: domain.StationGrill,
			Status:  domain.StatusNew,
			Items: []domain.LineItem{
				{Name: "burger", Quantity: 2, Modifiers: []string{"no onion", "extra cheese"}},
				{Name: "fries", Quantity: 2, Station: domain.StationFry},
			},
			TableNumber: "T7",
			CreatedAt:   now.Add(-30 * time.Second),
		},
	}

	for i := range seedOrders {
		order := &seedOrders[i]
		order.ID = uuid.New()
		if order.Status != domain.StatusNew {
			at := order.CreatedAt.Add(time.Minute)
			order.StatusChangedAt = &at
		}

		if err := store.Create(ctx, order); err != nil {
			return fmt.Errorf("seed order %d: %w", i, err)
		}
	}

	logger.Info("demo orders seeded", "count", len(seedOrders))
	return nil
}
