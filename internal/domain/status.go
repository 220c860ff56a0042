package domain

import "errors"

// ErrInvalidTransition — запрошенный переход статуса невозможен.
// Например, recall для нового заказа или advance для завершённого.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status — статус заказа на кухне.
//
// Жизненный цикл:
//
//	NEW → COOKING → READY → DONE
//
// Advance двигает заказ на шаг вперёд, Recall — на шаг назад.
// DONE — терминальный статус: заказ исчезает с доски.
type Status string

const (
	// StatusNew — заказ принят, приготовление не началось.
	StatusNew Status = "new"

	// StatusCooking — заказ готовится.
	StatusCooking Status = "cooking"

	// StatusReady — заказ готов к выдаче.
	StatusReady Status = "ready"

	// StatusDone — заказ выдан, на доске не отображается.
	StatusDone Status = "done"
)

// Valid возвращает true, если статус входит в закрытый набор.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusCooking, StatusReady, StatusDone:
		return true
	default:
		return false
	}
}

// IsTerminal возвращает true, если статус финальный.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// Next возвращает следующий статус (advance).
func (s Status) Next() (Status, error) {
	switch s {
	case StatusNew:
		return StatusCooking, nil
	case StatusCooking:
		return StatusReady, nil
	case StatusReady:
		return StatusDone, nil
	default:
		return "", ErrInvalidTransition
	}
}

// Prev возвращает предыдущий статус (recall).
// Recall для NEW невозможен.
func (s Status) Prev() (Status, error) {
	switch s {
	case StatusCooking:
		return StatusNew, nil
	case StatusReady:
		return StatusCooking, nil
	default:
		return "", ErrInvalidTransition
	}
}

// ParseStatus парсит строку в Status.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// Lane — рабочая колонка доски, в которой отображается заказ.
//
// Колонка определяется только статусом заказа: каждый активный
// статус отображается ровно в одной колонке.
type Lane string

const (
	// LaneNew — колонка новых заказов.
	LaneNew Lane = "new"

	// LaneCooking — колонка заказов в работе.
	LaneCooking Lane = "cooking"

	// LaneReady — колонка готовых заказов.
	LaneReady Lane = "ready"
)

// Lane возвращает колонку для статуса.
// Для терминального статуса колонки нет (ok=false).
func (s Status) Lane() (Lane, bool) {
	switch s {
	case StatusNew:
		return LaneNew, true
	case StatusCooking:
		return LaneCooking, true
	case StatusReady:
		return LaneReady, true
	default:
		return "", false
	}
}
