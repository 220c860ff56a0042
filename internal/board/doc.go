// Package board содержит состояние кухонной доски и чистую логику
// её представления.
//
// Структура:
//   - state.go    — State и события (функция перехода на каждое событие)
//   - board.go    — Board: event loop, владеющий State
//   - lanes.go    — раскладка заказов по колонкам (фильтр + сортировка)
//   - urgency.go  — классификация срочности по возрасту заказа
//   - notifier.go — уведомления о новых заказах (diff seen-set)
//   - view.go     — построение представления доски для клиентов
//
// Доска не владеет заказами: источник истины — внешний сервис,
// здесь живёт только кэш плюс оптимистичные правки. Успешный poll
// заменяет кэш целиком (last-writer-wins, без слияния).
package board
