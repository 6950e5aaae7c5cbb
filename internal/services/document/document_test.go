package document

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/config"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetListing(ctx context.Context, id string) (*models.BusinessListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessListing), args.Error(1)
}

func (m *MockRepository) PushDocument(ctx context.Context, id string, doc models.Document, maxDocs int) (bool, error) {
	args := m.Called(ctx, id, doc, maxDocs)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) PullDocument(ctx context.Context, id, documentID string) (bool, error) {
	args := m.Called(ctx, id, documentID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testConfig() config.Documents {
	return config.Documents{
		MaxPerListing: 10,
		MaxSizeBytes:  10 << 20,
		AllowedType:   "application/pdf",
	}
}

func ownedListing() *models.BusinessListing {
	return &models.BusinessListing{
		ID:       "listing-1",
		SellerID: "seller-1",
		Documents: []models.Document{
			{ID: "doc-1", Filename: "report.pdf", ContentType: "application/pdf", Content: []byte("pdf-bytes"), Size: 9},
		},
	}
}

func TestService_Upload(t *testing.T) {
	tests := []struct {
		name        string
		caller      access.Caller
		contentType string
		content     []byte
		setupMocks  func(*MockRepository)
		expectedErr error
	}{
		{
			name:        "успешная загрузка владельцем",
			caller:      access.Seller("seller-1"),
			contentType: "application/pdf",
			content:     []byte("pdf"),
			setupMocks: func(r *MockRepository) {
				r.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()
				r.On("PushDocument", mock.Anything, "listing-1", mock.Anything, 10).Return(true, nil).Once()
			},
		},
		{
			name:        "недопустимый тип содержимого",
			caller:      access.Seller("seller-1"),
			contentType: "image/png",
			content:     []byte("png"),
			setupMocks:  func(_ *MockRepository) {},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "превышен размер документа",
			caller:      access.Seller("seller-1"),
			contentType: "application/pdf",
			content:     bytes.Repeat([]byte("a"), (10<<20)+1),
			setupMocks:  func(_ *MockRepository) {},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "чужой продавец не может загружать",
			caller:      access.Seller("intruder"),
			contentType: "application/pdf",
			content:     []byte("pdf"),
			setupMocks: func(r *MockRepository) {
				r.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()
			},
			expectedErr: models.ErrForbidden,
		},
		{
			name:        "лимит документов достигнут",
			caller:      access.Seller("seller-1"),
			contentType: "application/pdf",
			content:     []byte("pdf"),
			setupMocks: func(r *MockRepository) {
				r.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()
				r.On("PushDocument", mock.Anything, "listing-1", mock.Anything, 10).Return(false, nil).Once()
			},
			expectedErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMocks(repo)

			service := New(repo, testConfig(), newNoopLogger())
			meta, err := service.Upload(context.Background(), "listing-1", tt.caller,
				"file.pdf", tt.contentType, tt.content)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, meta.ID)
				assert.Equal(t, int64(len(tt.content)), meta.Size)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Get(t *testing.T) {
	tests := []struct {
		name        string
		caller      access.Caller
		documentID  string
		expectedErr error
	}{
		{
			name:       "владелец скачивает содержимое",
			caller:     access.Seller("seller-1"),
			documentID: "doc-1",
		},
		{
			name:       "подписанный покупатель скачивает содержимое",
			caller:     access.Buyer("buyer-1", true),
			documentID: "doc-1",
		},
		{
			name:        "покупатель без подписки получает отказ",
			caller:      access.Buyer("buyer-1", false),
			documentID:  "doc-1",
			expectedErr: models.ErrForbidden,
		},
		{
			name:        "аноним получает отказ",
			caller:      access.Anonymous(),
			documentID:  "doc-1",
			expectedErr: models.ErrForbidden,
		},
		{
			name:        "несуществующий документ",
			caller:      access.Seller("seller-1"),
			documentID:  "missing",
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()

			service := New(repo, testConfig(), newNoopLogger())
			doc, err := service.Get(context.Background(), "listing-1", tt.documentID, tt.caller)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, []byte("pdf-bytes"), doc.Content)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	t.Run("владелец удаляет документ", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()
		repo.On("PullDocument", mock.Anything, "listing-1", "doc-1").Return(true, nil).Once()

		service := New(repo, testConfig(), newNoopLogger())
		err := service.Delete(context.Background(), "listing-1", "doc-1", access.Seller("seller-1"))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("подписанный покупатель не может удалять", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()

		service := New(repo, testConfig(), newNoopLogger())
		err := service.Delete(context.Background(), "listing-1", "doc-1", access.Buyer("buyer-1", true))

		assert.ErrorIs(t, err, models.ErrForbidden)
		repo.AssertNotCalled(t, "PullDocument")
	})

	t.Run("документ уже удалён", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetListing", mock.Anything, "listing-1").Return(ownedListing(), nil).Once()
		repo.On("PullDocument", mock.Anything, "listing-1", "missing").Return(false, nil).Once()

		service := New(repo, testConfig(), newNoopLogger())
		err := service.Delete(context.Background(), "listing-1", "missing", access.Seller("seller-1"))

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
