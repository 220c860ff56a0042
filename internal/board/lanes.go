package board

import (
	"sort"
	"strings"

	"github.com/shaiso/KDS/internal/domain"
)

// Filter — фильтр доски: цех и текстовый поиск.
type Filter struct {
	// Station — точное совпадение цеха заказа.
	// StationAll (или пустое значение) — все цеха.
	Station domain.Station

	// Query — подстрока без учёта регистра. Ищется в номере заказа,
	// идентификаторе стола, имени клиента и названиях позиций.
	Query string
}

// Lanes — заказы, разложенные по трём колонкам доски.
// Внутри колонки заказы отсортированы по времени создания
// (старые первыми), при равенстве — в порядке получения.
type Lanes struct {
	New     []domain.Order
	Cooking []domain.Order
	Ready   []domain.Order
}

// Classify раскладывает заказы по колонкам.
//
// Чистая функция: фильтрует по цеху и поисковой строке, разбивает
// отфильтрованное по статусам и сортирует каждую колонку. Заказы
// в терминальном статусе отбрасываются.
func Classify(orders []domain.Order, f Filter) Lanes {
	var lanes Lanes

	for _, o := range orders {
		if !Matches(o, f) {
			continue
		}

		lane, ok := o.Status.Lane()
		if !ok {
			continue
		}

		switch lane {
		case domain.LaneNew:
			lanes.New = append(lanes.New, o)
		case domain.LaneCooking:
			lanes.Cooking = append(lanes.Cooking, o)
		case domain.LaneReady:
			lanes.Ready = append(lanes.Ready, o)
		}
	}

	sortLane(lanes.New)
	sortLane(lanes.Cooking)
	sortLane(lanes.Ready)

	return lanes
}

// Matches проверяет, проходит ли заказ фильтр.
func Matches(o domain.Order, f Filter) bool {
	if f.Station != "" && f.Station != domain.StationAll && o.Station != f.Station {
		return false
	}

	if f.Query == "" {
		return true
	}

	q := strings.ToLower(f.Query)

	if strings.Contains(strings.ToLower(o.Number), q) {
		return true
	}
	if strings.Contains(strings.ToLower(o.TableNumber), q) {
		return true
	}
	if strings.Contains(strings.ToLower(o.CustomerName), q) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}

	return false
}

// sortLane сортирует колонку по времени создания, старые первыми.
// Стабильная сортировка сохраняет порядок получения при равенстве.
func sortLane(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
