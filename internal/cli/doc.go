// Package cli реализует инструмент командной строки kds.
//
// # Обзор
//
// CLI — клиентская утилита для доски заказов. Работает через HTTP,
// не импортирует внутренние пакеты сервисов. Используется для
// просмотра доски, смены статусов и управления оповещениями;
// для smoke-тестов умеет создавать заказы через orderd.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для API доски (и intake-endpoint'а orderd).
// Инкапсулирует все HTTP-запросы, парсинг ответов (DataResponse,
// ListResponse, ErrorResponse) и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080", "http://localhost:8081")
//	board, err := client.Board("grill", "")
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: kds board --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - board:  просмотр доски (--station, --search, --watch)
//   - order:  advance, recall, done, status, create
//   - alerts: on, off, drain
//
// Каждая группа создаётся через фабричную функцию (NewBoardCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
