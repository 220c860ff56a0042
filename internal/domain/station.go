package domain

// Station — цех кухни, в который маршрутизируется заказ или позиция.
//
// Набор цехов фиксированный. StationAll — wildcard для фильтра доски,
// заказу он никогда не присваивается.
type Station string

const (
	StationGrill   Station = "grill"
	StationFry     Station = "fry"
	StationSalad   Station = "salad"
	StationDrinks  Station = "drinks"
	StationDessert Station = "dessert"

	// StationAll — фильтр "все цеха" (только для доски).
	StationAll Station = "all"
)

// Valid возвращает true, если цех входит в закрытый набор
// (wildcard не считается цехом).
func (s Station) Valid() bool {
	switch s {
	case StationGrill, StationFry, StationSalad, StationDrinks, StationDessert:
		return true
	default:
		return false
	}
}

// ParseStation парсит строку в Station. Пустая строка и "all"
// трактуются как wildcard.
func ParseStation(s string) (Station, bool) {
	if s == "" || Station(s) == StationAll {
		return StationAll, true
	}
	st := Station(s)
	return st, st.Valid()
}

// FulfillmentType — способ выдачи заказа.
type FulfillmentType string

const (
	FulfillmentDineIn   FulfillmentType = "dine_in"
	FulfillmentTakeout  FulfillmentType = "takeout"
	FulfillmentDelivery FulfillmentType = "delivery"
)

// Valid возвращает true, если тип входит в закрытый набор.
func (t FulfillmentType) Valid() bool {
	switch t {
	case FulfillmentDineIn, FulfillmentTakeout, FulfillmentDelivery:
		return true
	default:
		return false
	}
}
