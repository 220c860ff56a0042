package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/KDS/internal/domain"
)

// Alert — одноразовое уведомление о новом заказе на доске.
//
// Уведомление формируется diff-ом по снимку seen-set предыдущего poll,
// а не push-событием: быстрый цикл появился/исчез между poll-ами
// теряется, а заказ, удалённый и добавленный с тем же ID, неотличим
// от нового.
type Alert struct {
	// OrderID — идентификатор нового заказа.
	OrderID uuid.UUID `json:"order_id"`

	// Number — номер заказа для отображения.
	Number string `json:"number"`

	// At — время обнаружения (время poll-а).
	At time.Time `json:"at"`
}

// diffNew возвращает заказы, присутствующие в orders,
// но отсутствующие в seen.
func diffNew(seen map[uuid.UUID]struct{}, orders []domain.Order) []domain.Order {
	var fresh []domain.Order
	for _, o := range orders {
		if _, ok := seen[o.ID]; !ok {
			fresh = append(fresh, o)
		}
	}
	return fresh
}

// rebuildSeen строит seen-set по результату poll-а.
func rebuildSeen(orders []domain.Order) map[uuid.UUID]struct{} {
	seen := make(map[uuid.UUID]struct{}, len(orders))
	for _, o := range orders {
		seen[o.ID] = struct{}{}
	}
	return seen
}
