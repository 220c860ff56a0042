// Package syncer синхронизирует доску с источником заказов.
//
// Контракт:
//   - На фиксированном интервале забирается полный набор заказов
//     с ограниченным таймаутом; успех заменяет кэш доски целиком,
//     ошибка логируется и сохраняет прежнее состояние.
//   - RequestStatusChange применяет статус локально немедленно
//     и асинхронно зовёт update endpoint; при ошибке отката нет,
//     согласование — следующим poll-ом.
//   - Retry/backoff нет, только обрыв по таймауту.
//
// Nudge позволяет запросить внеочередной poll (например, по событию
// из RabbitMQ); согласование при этом остаётся полной заменой.
package syncer
