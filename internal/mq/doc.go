// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление fanout-обменника и очередей
//   - publisher.go  — публикация событий заказов
//   - consumer.go   — потребление событий из очередей
//
// Типы сообщений:
//   - order.created         — принят новый заказ
//   - order.status_changed  — заказ сменил статус
//
// Обменник kds.orders — fanout: kds-orderd публикует, периферийные
// потребители подписываются своими очередями. Доска использует
// события только как сигнал для внеочередного poll-а; источником
// данных остаётся list endpoint. Брокер опционален: сервисы работают
// и без него.
package mq
