package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// Exchanges — имена обменников.
const (
	// ExchangeOrders — fanout-обменник событий заказов.
	// kds-orderd публикует сюда order.created и order.status_changed;
	// периферийные потребители (доска, принтеры, трекеры)
	// подписываются своими очередями.
	ExchangeOrders Exchange = "kds.orders"
)

// Queues — имена очередей.
const (
	// QueueBoardEvents — очередь доски: события заказов
	// ускоряют внеочередной poll.
	QueueBoardEvents Queue = "board.events"
)

func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeOrders), // name
			"fanout",               // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeOrders, err)
		}
		return nil
	})
}

// SetupBoardQueue объявляет очередь доски и привязывает её
// к обменнику событий. Вызывается потребителем (kds-board).
// Обменник объявляется тоже: порядок старта сервисов не важен.
func SetupBoardQueue(ctx context.Context, conn *Connection) error {
	if err := SetupTopology(ctx, conn); err != nil {
		return err
	}

	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		_, err := ch.QueueDeclare(
			string(QueueBoardEvents), // name
			false,                    // durable: доска эфемерна, очередь тоже
			true,                     // delete when unused
			false,                    // exclusive
			false,                    // no-wait
			nil,                      // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueBoardEvents, err)
		}

		err = ch.QueueBind(
			string(QueueBoardEvents), // queue name
			"",                       // routing key (fanout игнорирует)
			string(ExchangeOrders),   // exchange
			false,                    // no-wait
			nil,                      // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueBoardEvents, ExchangeOrders, err)
		}
		return nil
	})
}
