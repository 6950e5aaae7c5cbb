// Package listing содержит бизнес-логику жизненного цикла бизнес-листингов:
// создание, подтверждение email, разреженные обновления, каталог и счётчики.
//
// Жизненный цикл: draft -> pending_email_verification -> pending_payment -> active.
// Листинг, созданный аутентифицированным продавцом, начинает с draft;
// созданный анонимно — с pending_email_verification и одноразовым токеном,
// который отправляется через очередь уведомлений.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// ListingRepository определяет методы для работы с листингами в хранилище.
type ListingRepository interface {
	// CreateListing добавляет новый листинг и возвращает его ID.
	CreateListing(ctx context.Context, listing models.BusinessListing) (string, error)
	// GetListing возвращает листинг по ID.
	GetListing(ctx context.Context, id string) (*models.BusinessListing, error)
	// ListListings возвращает активные листинги по фильтрам каталога.
	ListListings(ctx context.Context, filters models.ListingFilters) ([]*models.BusinessListing, error)
	// ListListingsBySeller возвращает листинги продавца во всех статусах.
	ListListingsBySeller(ctx context.Context, sellerID string) ([]*models.BusinessListing, error)
	// UpdateListingFields применяет разреженное обновление одним $set.
	UpdateListingFields(ctx context.Context, id string, fields map[string]any) error
	// IncrementViews увеличивает счётчик просмотров на единицу.
	IncrementViews(ctx context.Context, id string) error
	// IncrementInquiries увеличивает счётчик запросов покупателей.
	IncrementInquiries(ctx context.Context, id string) error
	// ConfirmListingEmail сверяет токен и переводит листинг в pending_payment.
	ConfirmListingEmail(ctx context.Context, id, token string) (bool, error)
}

// Notifier описывает отправку писем подтверждения. Сбой отправки
// не распространяется на вызывающего, а только логируется.
type Notifier interface {
	SendVerification(msg models.VerificationEmail) error
}

// Service реализует бизнес-логику работы с листингами.
type Service struct {
	repo     ListingRepository
	notifier Notifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ListingRepository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Create создает новый листинг. Аутентифицированный продавец получает
// статус draft и владение листингом; анонимный вызывающий — статус
// pending_email_verification, временный seller_id и одноразовый токен,
// отправляемый на указанный email.
func (s *Service) Create(ctx context.Context, caller access.Caller, req models.DummyListing) (*models.BusinessListing, error) {
	const op = "listing.Create"

	now := time.Now().UTC()
	entry := models.BusinessListing{
		ID:                  uuid.NewString(),
		Title:               req.Title,
		Description:         req.Description,
		Industry:            req.Industry,
		Region:              req.Region,
		AnnualRevenue:       req.AnnualRevenue,
		EBITDA:              req.EBITDA,
		AskingPrice:         req.AskingPrice,
		RiskGrade:           req.RiskGrade,
		SellerName:          req.SellerName,
		SellerEmail:         req.SellerEmail,
		ReasonForSale:       req.ReasonForSale,
		GrowthOpportunities: req.GrowthOpportunities,
		FinancialData:       req.FinancialData,
		KeyMetrics:          req.KeyMetrics,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if caller.Kind == access.KindSeller {
		entry.Status = models.StatusDraft
		entry.SellerID = caller.UID
	} else {
		// Анонимное создание: владелец пока неизвестен, контактный email
		// не подтверждён, поэтому листинг ждёт подтверждения по токену.
		entry.Status = models.StatusPendingEmailVerification
		entry.SellerID = uuid.NewString()
		entry.VerificationToken = uuid.NewString()
	}

	if _, err := s.repo.CreateListing(ctx, entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new listing",
		slog.String("id", entry.ID), slog.String("status", string(entry.Status)))

	if entry.VerificationToken != "" {
		err := s.notifier.SendVerification(models.VerificationEmail{
			Kind:      models.VerificationKindListing,
			Email:     entry.SellerEmail,
			Name:      entry.SellerName,
			Token:     entry.VerificationToken,
			ListingID: entry.ID,
		})
		if err != nil {
			s.log.Warn("failed to send verification email", sl.Err(err))
		}
	}
	return &entry, nil
}

// VerifyEmail сверяет одноразовый токен листинга. Совпадение переводит
// листинг в pending_payment и очищает токен; несовпадение ничего не меняет.
func (s *Service) VerifyEmail(ctx context.Context, id, token string) error {
	const op = "listing.VerifyEmail"

	ok, err := s.repo.ConfirmListingEmail(ctx, id, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		s.log.Info("listing email verified", slog.String("id", id))
		return nil
	}

	// Переход не применился: либо листинга нет, либо токен не совпал.
	if _, err := s.repo.GetListing(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: invalid verification token: %w", op, models.ErrValidation)
}

// Read возвращает проекцию листинга для вызывающего и увеличивает
// счётчик просмотров ровно на единицу за вызов, независимо от личности.
func (s *Service) Read(ctx context.Context, id string, caller access.Caller) (*models.ListingView, error) {
	const op = "listing.Read"

	entry, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return access.Project(entry, caller), nil
}

// Update применяет разреженное обновление владельца: только заполненные
// поля, одним атомарным $set. Статус меняется только при явном
// переопределении в запросе.
func (s *Service) Update(ctx context.Context, id string, caller access.Caller, req models.UpdateListing) (*models.ListingView, error) {
	const op = "listing.Update"

	entry, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !caller.IsOwner(entry) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	fields := collectFields(req)
	if len(fields) > 0 {
		if err := s.repo.UpdateListingFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated listing", slog.String("id", id))
	return access.Project(updated, caller), nil
}

// List возвращает карточки активных листингов по фильтрам каталога.
func (s *Service) List(ctx context.Context, filters models.ListingFilters) ([]*models.ListingCard, error) {
	const op = "listing.List"

	entries, err := s.repo.ListListings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cards := make([]*models.ListingCard, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, entry.Card())
	}
	return cards, nil
}

// ListBySeller возвращает проекции всех листингов продавца-владельца.
func (s *Service) ListBySeller(ctx context.Context, caller access.Caller) ([]*models.ListingView, error) {
	const op = "listing.ListBySeller"

	if caller.Kind != access.KindSeller {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	entries, err := s.repo.ListListingsBySeller(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	views := make([]*models.ListingView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, access.Project(entry, caller))
	}
	return views, nil
}

// Inquire увеличивает счётчик запросов покупателей по листингу.
func (s *Service) Inquire(ctx context.Context, id string) error {
	const op = "listing.Inquire"
	if err := s.repo.IncrementInquiries(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// collectFields переводит заполненные поля разреженного обновления
// в набор полей документа для $set.
func collectFields(req models.UpdateListing) map[string]any {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Industry != nil {
		fields["industry"] = *req.Industry
	}
	if req.Region != nil {
		fields["region"] = *req.Region
	}
	if req.AnnualRevenue != nil {
		fields["annual_revenue"] = *req.AnnualRevenue
	}
	if req.EBITDA != nil {
		fields["ebitda"] = *req.EBITDA
	}
	if req.AskingPrice != nil {
		fields["asking_price"] = *req.AskingPrice
	}
	if req.RiskGrade != nil {
		fields["risk_grade"] = *req.RiskGrade
	}
	if req.SellerName != nil {
		fields["seller_name"] = *req.SellerName
	}
	if req.SellerEmail != nil {
		fields["seller_email"] = *req.SellerEmail
	}
	if req.ReasonForSale != nil {
		fields["reason_for_sale"] = *req.ReasonForSale
	}
	if req.GrowthOpportunities != nil {
		fields["growth_opportunities"] = *req.GrowthOpportunities
	}
	if req.FinancialData != nil {
		fields["financial_data"] = *req.FinancialData
	}
	if req.KeyMetrics != nil {
		fields["key_metrics"] = *req.KeyMetrics
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	return fields
}
