// Package models содержит доменные структуры бизнес-листингов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// BusinessStatus — статус жизненного цикла листинга.
type BusinessStatus string

// Статусы жизненного цикла: draft -> pending_email_verification ->
// pending_payment -> active; sold, withdrawn и pending достижимы из active.
const (
	StatusDraft                    BusinessStatus = "draft"
	StatusPendingEmailVerification BusinessStatus = "pending_email_verification"
	StatusPendingPayment           BusinessStatus = "pending_payment"
	StatusActive                   BusinessStatus = "active"
	StatusPending                  BusinessStatus = "pending"
	StatusSold                     BusinessStatus = "sold"
	StatusWithdrawn                BusinessStatus = "withdrawn"
)

// FinancialData — финансовые показатели бизнеса за один год.
type FinancialData struct {
	Year       int     `bson:"year" json:"year" validate:"required"`
	Revenue    float64 `bson:"revenue" json:"revenue"`
	ProfitLoss float64 `bson:"profit_loss" json:"profit_loss"`
	EBITDA     float64 `bson:"ebitda" json:"ebitda"`
	Assets     float64 `bson:"assets" json:"assets"`
	Liabilities float64 `bson:"liabilities" json:"liabilities"`
	CashFlow   float64 `bson:"cash_flow" json:"cash_flow"`
}

// BusinessListing представляет собой основную модель бизнес-листинга,
// используемую в бизнес-логике и хранилище.
type BusinessListing struct {
	ID                  string          `bson:"id"`                           // Уникальный идентификатор листинга
	Title               string          `bson:"title"`                        // Название бизнеса
	Description         string          `bson:"description"`                  // Описание
	Industry            string          `bson:"industry"`                     // Отрасль
	Region              string          `bson:"region"`                       // Регион
	AnnualRevenue       float64         `bson:"annual_revenue"`               // Годовая выручка
	EBITDA              float64         `bson:"ebitda"`                       // EBITDA
	AskingPrice         float64         `bson:"asking_price"`                 // Запрашиваемая цена
	RiskGrade           string          `bson:"risk_grade"`                   // Рейтинг риска A..E
	Status              BusinessStatus  `bson:"status"`                       // Текущий статус жизненного цикла
	SellerID            string          `bson:"seller_id"`                    // Идентификатор продавца-владельца
	SellerName          string          `bson:"seller_name"`                  // Имя продавца
	SellerEmail         string          `bson:"seller_email"`                 // Email продавца, видимость ограничена
	ReasonForSale       string          `bson:"reason_for_sale"`              // Причина продажи
	GrowthOpportunities string          `bson:"growth_opportunities"`         // Возможности роста
	FinancialData       []FinancialData `bson:"financial_data"`               // Финансовые данные по годам
	KeyMetrics          map[string]any  `bson:"key_metrics"`                  // Ключевые метрики, прозрачно для ядра
	VerificationToken   string          `bson:"verification_token,omitempty"` // Одноразовый токен подтверждения email
	Documents           []Document      `bson:"documents,omitempty"`          // Прикреплённые документы, не более 10
	CreatedAt           time.Time       `bson:"created_at"`
	UpdatedAt           time.Time       `bson:"updated_at"`
	Views               int64           `bson:"views"`     // Счётчик просмотров, только растёт
	Inquiries           int64           `bson:"inquiries"` // Счётчик запросов покупателей
	Featured            bool            `bson:"featured"`  // Признак продвигаемого листинга
}

// DummyListing используется для приёма данных из JSON-запроса на создание листинга,
// прежде чем конвертировать их в BusinessListing.
type DummyListing struct {
	Title               string          `json:"title" validate:"required,min=3,max=200"`
	Description         string          `json:"description" validate:"required"`
	Industry            string          `json:"industry" validate:"required"`
	Region              string          `json:"region" validate:"required"`
	AnnualRevenue       float64         `json:"annual_revenue" validate:"gte=0"`
	EBITDA              float64         `json:"ebitda"`
	AskingPrice         float64         `json:"asking_price" validate:"gt=0"`
	RiskGrade           string          `json:"risk_grade" validate:"required,oneof=A B C D E"`
	SellerName          string          `json:"seller_name" validate:"required"`
	SellerEmail         string          `json:"seller_email" validate:"required,email"`
	ReasonForSale       string          `json:"reason_for_sale"`
	GrowthOpportunities string          `json:"growth_opportunities"`
	FinancialData       []FinancialData `json:"financial_data"`
	KeyMetrics          map[string]any  `json:"key_metrics"`
}

// UpdateListing — разреженное обновление листинга: применяются только
// заполненные поля, одним атомарным $set, без перезаписи всего документа.
type UpdateListing struct {
	Title               *string          `json:"title,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Industry            *string          `json:"industry,omitempty"`
	Region              *string          `json:"region,omitempty"`
	AnnualRevenue       *float64         `json:"annual_revenue,omitempty"`
	EBITDA              *float64         `json:"ebitda,omitempty"`
	AskingPrice         *float64         `json:"asking_price,omitempty"`
	RiskGrade           *string          `json:"risk_grade,omitempty"`
	SellerName          *string          `json:"seller_name,omitempty"`
	SellerEmail         *string          `json:"seller_email,omitempty"`
	ReasonForSale       *string          `json:"reason_for_sale,omitempty"`
	GrowthOpportunities *string          `json:"growth_opportunities,omitempty"`
	FinancialData       *[]FinancialData `json:"financial_data,omitempty"`
	KeyMetrics          *map[string]any  `json:"key_metrics,omitempty"`
	Status              *BusinessStatus  `json:"status,omitempty"` // Явное переопределение статуса владельцем
}

// ListingView — проекция листинга для конкретного вызывающего.
// SellerEmail равен nil, если вызывающий не владелец и не подписанный покупатель.
type ListingView struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Industry            string          `json:"industry"`
	Region              string          `json:"region"`
	AnnualRevenue       float64         `json:"annual_revenue"`
	EBITDA              float64         `json:"ebitda"`
	AskingPrice         float64         `json:"asking_price"`
	RiskGrade           string          `json:"risk_grade"`
	Status              BusinessStatus  `json:"status"`
	SellerName          string          `json:"seller_name"`
	SellerEmail         *string         `json:"seller_email"`
	ReasonForSale       string          `json:"reason_for_sale"`
	GrowthOpportunities string          `json:"growth_opportunities"`
	FinancialData       []FinancialData `json:"financial_data"`
	KeyMetrics          map[string]any  `json:"key_metrics"`
	Documents           []DocumentMeta  `json:"documents"`
	DocumentsDownloadable bool          `json:"documents_downloadable"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Views               int64           `json:"views"`
	Inquiries           int64           `json:"inquiries"`
	Featured            bool            `json:"featured"`
}

// ListingCard — сокращённое представление листинга для публичного каталога.
type ListingCard struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Industry      string         `json:"industry"`
	Region        string         `json:"region"`
	AnnualRevenue float64        `json:"annual_revenue"`
	EBITDA        float64        `json:"ebitda"`
	AskingPrice   float64        `json:"asking_price"`
	RiskGrade     string         `json:"risk_grade"`
	Status        BusinessStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Views         int64          `json:"views"`
	Inquiries     int64          `json:"inquiries"`
	Featured      bool           `json:"featured"`
}

// Card строит карточку каталога из полного листинга.
func (l *BusinessListing) Card() *ListingCard {
	return &ListingCard{
		ID:            l.ID,
		Title:         l.Title,
		Industry:      l.Industry,
		Region:        l.Region,
		AnnualRevenue: l.AnnualRevenue,
		EBITDA:        l.EBITDA,
		AskingPrice:   l.AskingPrice,
		RiskGrade:     l.RiskGrade,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		Views:         l.Views,
		Inquiries:     l.Inquiries,
		Featured:      l.Featured,
	}
}
