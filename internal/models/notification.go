package models

// Типы писем подтверждения.
const (
	VerificationKindUser    = "user"    // Подтверждение email учётной записи
	VerificationKindListing = "listing" // Подтверждение email анонимно созданного листинга
)

// VerificationEmail — сообщение для очереди почтовых уведомлений
// с одноразовым токеном подтверждения.
type VerificationEmail struct {
	Kind      string `json:"kind"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Token     string `json:"token"`
	ListingID string `json:"listing_id,omitempty"`
}
