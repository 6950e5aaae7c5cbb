// Package payment реализует имитацию платёжных операций: плату за
// размещение листинга и плату за подписку покупателя. Исход каждой
// попытки определяет подставляемый Decider; отказ платежа — не ошибка,
// а нормальный второй исход, о котором сообщается вызывающему.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// ListingRepository определяет методы хранилища, нужные для оплаты листинга.
type ListingRepository interface {
	// GetListing возвращает листинг по ID.
	GetListing(ctx context.Context, id string) (*models.BusinessListing, error)
	// UpdateListingStatus выполняет условный переход статуса.
	UpdateListingStatus(ctx context.Context, id string, from []models.BusinessStatus, to models.BusinessStatus) (bool, error)
}

// UserRepository определяет методы хранилища, нужные для оплаты подписки.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ActivateSubscription активирует подписку покупателя до expiry.
	ActivateSubscription(ctx context.Context, userUID string, expiry time.Time) error
}

// Service реализует имитацию платёжного шлюза.
type Service struct {
	listings ListingRepository
	users    UserRepository
	decider  Decider
	term     time.Duration // Срок подписки за один успешный платёж
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(listings ListingRepository, users UserRepository, decider Decider, term time.Duration, log *slog.Logger) *Service {
	return &Service{
		listings: listings,
		users:    users,
		decider:  decider,
		term:     term,
		log:      log,
	}
}

// PayListingFee проводит имитацию оплаты размещения листинга.
// Листинг должен быть в статусе draft или pending_payment. Успех переводит
// его в active и обновляет updated_at; отказ ничего не меняет.
func (s *Service) PayListingFee(ctx context.Context, businessID string, amount float64) (*models.PaymentResult, error) {
	const op = "payment.PayListingFee"

	entry, err := s.listings.GetListing(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if entry.Status != models.StatusDraft && entry.Status != models.StatusPendingPayment {
		return nil, fmt.Errorf("%s: listing is not awaiting payment: %w", op, models.ErrValidation)
	}

	paymentID := uuid.NewString()
	if !s.decider.Approve() {
		s.log.Info("listing fee payment declined",
			slog.String("business_id", businessID), slog.String("payment_id", paymentID))
		return &models.PaymentResult{
			PaymentID:  paymentID,
			Status:     models.PaymentFailed,
			BusinessID: businessID,
			Amount:     amount,
			Message:    "Payment failed. Please try again.",
		}, nil
	}

	applied, err := s.listings.UpdateListingStatus(ctx, businessID,
		[]models.BusinessStatus{models.StatusDraft, models.StatusPendingPayment},
		models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		// Конкурирующий переход успел раньше.
		return nil, fmt.Errorf("%s: listing is not awaiting payment: %w", op, models.ErrValidation)
	}

	s.log.Info("listing activated after payment",
		slog.String("business_id", businessID), slog.String("payment_id", paymentID))
	return &models.PaymentResult{
		PaymentID:  paymentID,
		Status:     models.PaymentSucceeded,
		BusinessID: businessID,
		Amount:     amount,
		Message:    "Payment successful! Your business listing is now active.",
	}, nil
}

// PaySubscriptionFee проводит имитацию оплаты подписки покупателя.
// Успех активирует подписку на срок term от текущего момента либо
// от прежней даты истечения, если она в будущем.
func (s *Service) PaySubscriptionFee(ctx context.Context, userUID string, amount float64) (*models.PaymentResult, error) {
	const op = "payment.PaySubscriptionFee"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Role != models.RoleBuyer {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	paymentID := uuid.NewString()
	if !s.decider.Approve() {
		s.log.Info("subscription payment declined",
			slog.String("user_uid", userUID), slog.String("payment_id", paymentID))
		return &models.PaymentResult{
			PaymentID: paymentID,
			Status:    models.PaymentFailed,
			Amount:    amount,
			Message:   "Payment failed. Please try again.",
		}, nil
	}

	now := time.Now().UTC()
	start := now
	if user.SubscriptionExpiry != nil && user.SubscriptionExpiry.After(now) {
		start = *user.SubscriptionExpiry
	}
	expiry := start.Add(s.term)

	if err := s.users.ActivateSubscription(ctx, userUID, expiry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription activated after payment",
		slog.String("user_uid", userUID), slog.Time("expiry", expiry))
	return &models.PaymentResult{
		PaymentID: paymentID,
		Status:    models.PaymentSucceeded,
		Amount:    amount,
		Message:   "Payment successful! Your subscription is now active.",
	}, nil
}
