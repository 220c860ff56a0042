package orderd

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// CreateOrderRequest — запрос на приём нового заказа.
type CreateOrderRequest struct {
	Type         string                  `json:"type"`
	Station      string                  `json:"station"`
	Items        []CreateLineItemRequest `json:"items"`
	Note         string                  `json:"note"`
	TableNumber  string                  `json:"table_number"`
	CustomerName string                  `json:"customer_name"`
}

// CreateLineItemRequest — позиция нового заказа.
type CreateLineItemRequest struct {
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Modifiers []string `json:"modifiers"`
	Station   string   `json:"station"`
}

// ToDomain валидирует запрос и собирает domain.Order.
// При ошибке возвращает сообщение для BadRequest.
func (req CreateOrderRequest) ToDomain() (*domain.Order, string) {
	fulfillment := domain.FulfillmentType(req.Type)
	if !fulfillment.Valid() {
		return nil, "unknown fulfillment type"
	}

	station := domain.Station(req.Station)
	if !station.Valid() {
		return nil, "unknown station"
	}

	if len(req.Items) == 0 {
		return nil, "at least one item is required"
	}

	items := make([]domain.LineItem, len(req.Items))
	for i, item := range req.Items {
		if item.Name == "" {
			return nil, "item name is required"
		}
		if item.Quantity <= 0 {
			return nil, "item quantity must be positive"
		}
		if item.Station != "" && !domain.Station(item.Station).Valid() {
			return nil, "unknown item station"
		}
		items[i] = domain.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Modifiers: item.Modifiers,
			Station:   domain.Station(item.Station),
		}
	}

	return &domain.Order{
		ID:           uuid.New(),
		Type:         fulfillment,
		Station:      station,
		Status:       domain.StatusNew,
		Items:        items,
		Note:         req.Note,
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
		CreatedAt:    time.Now(),
	}, ""
}

// UpdateStatusRequest — запрос на смену статуса заказа.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
