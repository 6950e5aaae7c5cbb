package listing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateListing(ctx context.Context, listing models.BusinessListing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) GetListing(ctx context.Context, id string) (*models.BusinessListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessListing), args.Error(1)
}

func (m *MockRepository) ListListings(ctx context.Context, filters models.ListingFilters) ([]*models.BusinessListing, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessListing), args.Error(1)
}

func (m *MockRepository) ListListingsBySeller(ctx context.Context, sellerID string) ([]*models.BusinessListing, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessListing), args.Error(1)
}

func (m *MockRepository) UpdateListingFields(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) IncrementInquiries(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ConfirmListingEmail(ctx context.Context, id, token string) (bool, error) {
	args := m.Called(ctx, id, token)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendVerification(msg models.VerificationEmail) error {
	args := m.Called(msg)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Create(t *testing.T) {
	req := models.DummyListing{
		Title:       "Bakery in Chisinau",
		Description: "Established bakery",
		Industry:    "food_service",
		Region:      "chisinau",
		AskingPrice: 100000,
		RiskGrade:   "B",
		SellerName:  "Ion",
		SellerEmail: "ion@example.com",
	}

	t.Run("продавец создает листинг в статусе draft", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		var saved models.BusinessListing
		repo.On("CreateListing", mock.Anything, mock.MatchedBy(func(l models.BusinessListing) bool {
			saved = l
			return true
		})).Return("", nil).Once()

		service := New(repo, notifier, newNoopLogger())
		entry, err := service.Create(context.Background(), access.Seller("seller-1"), req)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusDraft, entry.Status)
		assert.Equal(t, "seller-1", entry.SellerID)
		assert.Empty(t, entry.VerificationToken)
		assert.Equal(t, saved.ID, entry.ID)
		notifier.AssertNotCalled(t, "SendVerification")
		repo.AssertExpectations(t)
	})

	t.Run("анонимное создание требует подтверждения email", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		repo.On("CreateListing", mock.Anything, mock.Anything).Return("", nil).Once()
		notifier.On("SendVerification", mock.MatchedBy(func(msg models.VerificationEmail) bool {
			return msg.Kind == models.VerificationKindListing && msg.Email == "ion@example.com" && msg.Token != ""
		})).Return(nil).Once()

		service := New(repo, notifier, newNoopLogger())
		entry, err := service.Create(context.Background(), access.Anonymous(), req)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusPendingEmailVerification, entry.Status)
		assert.NotEmpty(t, entry.VerificationToken)
		assert.NotEmpty(t, entry.SellerID)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("сбой отправки письма не отменяет создание", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := new(MockNotifier)
		repo.On("CreateListing", mock.Anything, mock.Anything).Return("", nil).Once()
		notifier.On("SendVerification", mock.Anything).Return(errors.New("broker down")).Once()

		service := New(repo, notifier, newNoopLogger())
		entry, err := service.Create(context.Background(), access.Anonymous(), req)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
	})
}

func TestService_VerifyEmail(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockRepository)
		expectedErr error
	}{
		{
			name: "успешное подтверждение",
			setupMocks: func(r *MockRepository) {
				r.On("ConfirmListingEmail", mock.Anything, "listing-1", "token-1").Return(true, nil).Once()
			},
			expectedErr: nil,
		},
		{
			name: "неверный токен не меняет листинг",
			setupMocks: func(r *MockRepository) {
				r.On("ConfirmListingEmail", mock.Anything, "listing-1", "token-1").Return(false, nil).Once()
				r.On("GetListing", mock.Anything, "listing-1").Return(&models.BusinessListing{ID: "listing-1"}, nil).Once()
			},
			expectedErr: models.ErrValidation,
		},
		{
			name: "листинг не найден",
			setupMocks: func(r *MockRepository) {
				r.On("ConfirmListingEmail", mock.Anything, "listing-1", "token-1").Return(false, nil).Once()
				r.On("GetListing", mock.Anything, "listing-1").Return(nil, models.ErrNotFound).Once()
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			service := New(repo, new(MockNotifier), newNoopLogger())
			err := service.VerifyEmail(context.Background(), "listing-1", "token-1")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Read(t *testing.T) {
	t.Run("чтение увеличивает счётчик просмотров", func(t *testing.T) {
		repo := new(MockRepository)
		entry := &models.BusinessListing{ID: "listing-1", SellerID: "seller-1", SellerEmail: "owner@example.com", Views: 5}
		repo.On("GetListing", mock.Anything, "listing-1").Return(entry, nil).Once()
		repo.On("IncrementViews", mock.Anything, "listing-1").Return(nil).Once()

		service := New(repo, new(MockNotifier), newNoopLogger())
		view, err := service.Read(context.Background(), "listing-1", access.Anonymous())

		assert.NoError(t, err)
		assert.Equal(t, int64(5), view.Views)
		assert.Nil(t, view.SellerEmail)
		repo.AssertExpectations(t)
	})

	t.Run("несуществующий листинг", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetListing", mock.Anything, "missing").Return(nil, models.ErrNotFound).Once()

		service := New(repo, new(MockNotifier), newNoopLogger())
		_, err := service.Read(context.Background(), "missing", access.Anonymous())

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	title := "New title"
	price := 250000.0

	t.Run("владелец обновляет только заполненные поля", func(t *testing.T) {
		repo := new(MockRepository)
		entry := &models.BusinessListing{ID: "listing-1", SellerID: "seller-1"}
		repo.On("GetListing", mock.Anything, "listing-1").Return(entry, nil).Twice()
		repo.On("UpdateListingFields", mock.Anything, "listing-1", map[string]any{
			"title":        title,
			"asking_price": price,
		}).Return(nil).Once()

		service := New(repo, new(MockNotifier), newNoopLogger())
		_, err := service.Update(context.Background(), "listing-1", access.Seller("seller-1"),
			models.UpdateListing{Title: &title, AskingPrice: &price})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("чужой вызывающий получает отказ", func(t *testing.T) {
		repo := new(MockRepository)
		entry := &models.BusinessListing{ID: "listing-1", SellerID: "seller-1"}
		repo.On("GetListing", mock.Anything, "listing-1").Return(entry, nil).Once()

		service := New(repo, new(MockNotifier), newNoopLogger())
		_, err := service.Update(context.Background(), "listing-1", access.Seller("intruder"),
			models.UpdateListing{Title: &title})

		assert.ErrorIs(t, err, models.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateListingFields")
	})

	t.Run("пустое обновление не трогает хранилище", func(t *testing.T) {
		repo := new(MockRepository)
		entry := &models.BusinessListing{ID: "listing-1", SellerID: "seller-1"}
		repo.On("GetListing", mock.Anything, "listing-1").Return(entry, nil).Twice()

		service := New(repo, new(MockNotifier), newNoopLogger())
		_, err := service.Update(context.Background(), "listing-1", access.Seller("seller-1"), models.UpdateListing{})

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "UpdateListingFields")
	})
}

func TestService_ListBySeller(t *testing.T) {
	t.Run("только продавец видит свои листинги", func(t *testing.T) {
		service := New(new(MockRepository), new(MockNotifier), newNoopLogger())
		_, err := service.ListBySeller(context.Background(), access.Buyer("buyer-1", true))
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("продавец получает листинги во всех статусах", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListListingsBySeller", mock.Anything, "seller-1").Return([]*models.BusinessListing{
			{ID: "a", SellerID: "seller-1", Status: models.StatusDraft, SellerEmail: "owner@example.com"},
			{ID: "b", SellerID: "seller-1", Status: models.StatusActive, SellerEmail: "owner@example.com"},
		}, nil).Once()

		service := New(repo, new(MockNotifier), newNoopLogger())
		views, err := service.ListBySeller(context.Background(), access.Seller("seller-1"))

		assert.NoError(t, err)
		if assert.Len(t, views, 2) {
			// Владелец видит собственный email в каждой проекции.
			assert.NotNil(t, views[0].SellerEmail)
		}
		repo.AssertExpectations(t)
	})
}
