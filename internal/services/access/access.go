// Package access реализует политику видимости: по личности вызывающего
// решает, какие поля листинга попадают в ответ. Контакты продавца и
// содержимое документов видят только владелец и покупатель с активной подпиской.
package access

import (
	"time"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Виды вызывающих.
const (
	KindAnonymous = "anonymous"
	KindSeller    = "seller"
	KindBuyer     = "buyer"
)

// Caller — личность вызывающего, от имени которого выполняется операция.
type Caller struct {
	Kind               string // anonymous, seller или buyer
	UID                string // Идентификатор пользователя, пустой для анонима
	SubscriptionActive bool   // Активна ли подписка, только для покупателей
}

// Anonymous возвращает анонимного вызывающего.
func Anonymous() Caller {
	return Caller{Kind: KindAnonymous}
}

// Seller возвращает вызывающего-продавца с указанным UID.
func Seller(uid string) Caller {
	return Caller{Kind: KindSeller, UID: uid}
}

// Buyer возвращает вызывающего-покупателя. Активность подписки
// вычисляется в момент запроса, а не кешируется.
func Buyer(uid string, subscriptionActive bool) Caller {
	return Caller{Kind: KindBuyer, UID: uid, SubscriptionActive: subscriptionActive}
}

// FromUser строит вызывающего из аутентифицированного пользователя.
func FromUser(u *models.User, now time.Time) Caller {
	switch u.Role {
	case models.RoleSeller:
		return Seller(u.UID)
	case models.RoleBuyer:
		return Buyer(u.UID, u.SubscriptionIsActive(now))
	default:
		return Anonymous()
	}
}

// IsOwner сообщает, является ли вызывающий продавцом-владельцем листинга.
func (c Caller) IsOwner(listing *models.BusinessListing) bool {
	return c.Kind == KindSeller && c.UID != "" && c.UID == listing.SellerID
}

// CanViewContacts сообщает, видны ли вызывающему контакты продавца
// и содержимое документов: владелец или покупатель с активной подпиской.
func (c Caller) CanViewContacts(listing *models.BusinessListing) bool {
	if c.IsOwner(listing) {
		return true
	}
	return c.Kind == KindBuyer && c.SubscriptionActive
}

// Project строит проекцию листинга для вызывающего. Email продавца
// опускается (nil, не ошибка) для всех, кроме владельца и подписанного
// покупателя; метаданные документов видны всем, содержимое — нет.
func Project(listing *models.BusinessListing, caller Caller) *models.ListingView {
	view := &models.ListingView{
		ID:                  listing.ID,
		Title:               listing.Title,
		Description:         listing.Description,
		Industry:            listing.Industry,
		Region:              listing.Region,
		AnnualRevenue:       listing.AnnualRevenue,
		EBITDA:              listing.EBITDA,
		AskingPrice:         listing.AskingPrice,
		RiskGrade:           listing.RiskGrade,
		Status:              listing.Status,
		SellerName:          listing.SellerName,
		ReasonForSale:       listing.ReasonForSale,
		GrowthOpportunities: listing.GrowthOpportunities,
		FinancialData:       listing.FinancialData,
		KeyMetrics:          listing.KeyMetrics,
		CreatedAt:           listing.CreatedAt,
		UpdatedAt:           listing.UpdatedAt,
		Views:               listing.Views,
		Inquiries:           listing.Inquiries,
		Featured:            listing.Featured,
	}

	view.Documents = make([]models.DocumentMeta, 0, len(listing.Documents))
	for i := range listing.Documents {
		view.Documents = append(view.Documents, listing.Documents[i].Meta())
	}

	if caller.CanViewContacts(listing) {
		email := listing.SellerEmail
		view.SellerEmail = &email
		view.DocumentsDownloadable = true
	}
	return view
}
