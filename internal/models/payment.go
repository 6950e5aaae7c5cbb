package models

// Статусы результата имитации платежа. Отказ — не ошибка,
// а нормальный второй исход.
const (
	PaymentSucceeded = "success"
	PaymentFailed    = "failed"
)

// DummyPayment используется для приёма данных из JSON-запроса на оплату
// размещения листинга.
type DummyPayment struct {
	PaymentType string  `json:"payment_type" validate:"omitempty,oneof=listing_fee subscription_fee"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}

// PaymentResult — двузначный результат имитации платежа.
type PaymentResult struct {
	PaymentID  string  `json:"payment_id"`
	Status     string  `json:"status"`
	BusinessID string  `json:"business_id,omitempty"`
	Amount     float64 `json:"amount"`
	Message    string  `json:"message"`
}
