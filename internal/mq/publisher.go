package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shaiso/KDS/internal/domain"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeOrderCreated       MessageType = "order.created"
	MessageTypeOrderStatusChanged MessageType = "order.status_changed"
)

// Publisher публикует события заказов в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedPayload — payload события о новом заказе.
type OrderCreatedPayload struct {
	OrderID uuid.UUID      `json:"order_id"`
	Number  string         `json:"number"`
	Station domain.Station `json:"station"`
}

// OrderStatusChangedPayload — payload события о смене статуса.
type OrderStatusChangedPayload struct {
	OrderID uuid.UUID     `json:"order_id"`
	Number  string        `json:"number"`
	Status  domain.Status `json:"status"`
}

// Publish публикует сообщение в fanout-обменник событий заказов.
func (p *Publisher) Publish(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeOrders), // exchange
			"",                     // routing key (fanout игнорирует)
			false,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				MessageId:   msg.ID,
				Timestamp:   msg.Timestamp,
				Body:        body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s: %w", ExchangeOrders, err)
		}

		p.logger.Debug("published message",
			"exchange", ExchangeOrders,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishOrderCreated публикует событие о новом заказе.
func (p *Publisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeOrderCreated,
		Payload: OrderCreatedPayload{
			OrderID: order.ID,
			Number:  order.Number,
			Station: order.Station,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, msg)
}

// PublishOrderStatusChanged публикует событие о смене статуса заказа.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeOrderStatusChanged,
		Payload: OrderStatusChangedPayload{
			OrderID: order.ID,
			Number:  order.Number,
			Status:  order.Status,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, msg)
}
