// Package orderd реализует эталонный источник заказов.
//
// Это сторона «источника истины», которую доска опрашивает: приём
// заказов, список активных, смена статуса. Хранилище — за интерфейсом
// repo.Store (Postgres или in-memory).
//
// Структура:
//   - handler.go — HTTP API (/api/v1/orders)
//   - dto.go     — request DTO и валидация
//   - sweep.go   — ночная уборка завершённых заказов (cron)
//   - seed.go    — demo-наполнение хранилища
//
// События order.created / order.status_changed публикуются в RabbitMQ
// fanout-обменник, если брокер подключён. Недоступный брокер не мешает
// работе API: события просто не публикуются.
package orderd
