// Package api содержит HTTP API сервер доски.
//
// Структура:
//   - handler.go       — Handler с DI (board, requester, logger)
//   - routes.go        — регистрация маршрутов
//   - middleware.go    — middleware (logging, recovery, CORS)
//   - response.go      — унифицированные JSON-ответы и обработка ошибок
//   - dto.go           — Data Transfer Objects (request/response)
//   - board_handler.go — представление доски и фильтры
//   - order_handler.go — смена статусов заказов (advance/recall/done)
//   - alert_handler.go — оповещения о новых заказах
//
// Смена статуса оптимистичная: ответ подтверждает локальное изменение,
// а не результат записи в источник. Итог сверяется следующим опросом.
package api
