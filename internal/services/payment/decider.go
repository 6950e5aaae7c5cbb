package payment

import "math/rand"

// Decider принимает решение об исходе имитируемого платежа.
// Продакшен-реализация случайна, тесты подставляют детерминированную.
type Decider interface {
	Approve() bool
}

// RandomDecider одобряет платёж с фиксированной вероятностью,
// имитируя ответ платёжного шлюза.
type RandomDecider struct {
	rate float64
}

// NewRandomDecider создает RandomDecider с вероятностью успеха rate (0..1).
func NewRandomDecider(rate float64) *RandomDecider {
	return &RandomDecider{rate: rate}
}

// Approve возвращает true с вероятностью rate.
func (d *RandomDecider) Approve() bool {
	return rand.Float64() < d.rate
}

// DeciderFunc адаптирует функцию к интерфейсу Decider.
type DeciderFunc func() bool

// Approve вызывает функцию.
func (f DeciderFunc) Approve() bool { return f() }
