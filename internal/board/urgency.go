package board

import "time"

// Urgency — уровень срочности заказа, производный от его возраста.
type Urgency string

const (
	// UrgencyNormal — заказ в пределах нормы.
	UrgencyNormal Urgency = "normal"

	// UrgencyWarning — заказ ждёт дольше warn-порога.
	UrgencyWarning Urgency = "warning"

	// UrgencyCritical — заказ ждёт дольше late-порога.
	UrgencyCritical Urgency = "critical"
)

// Thresholds — пороги срочности.
type Thresholds struct {
	// Warn — возраст, с которого заказ считается warning.
	Warn time.Duration

	// Late — возраст, с которого заказ считается critical.
	Late time.Duration
}

// DefaultThresholds возвращает пороги по умолчанию: 7 и 12 минут.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Warn: 420 * time.Second,
		Late: 720 * time.Second,
	}
}

// ClassifyUrgency отображает возраст заказа в уровень срочности.
// Границы включительные: elapsed == Warn уже warning, elapsed == Late
// уже critical. Монотонна по elapsed.
func ClassifyUrgency(elapsed time.Duration, t Thresholds) Urgency {
	switch {
	case elapsed >= t.Late:
		return UrgencyCritical
	case elapsed >= t.Warn:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
