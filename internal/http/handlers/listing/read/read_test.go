package read

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id string, caller access.Caller) (*models.ListingView, error) {
	args := m.Called(ctx, id, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingView), args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	email := "owner@example.com"

	tests := []struct {
		name           string
		id             string
		caller         access.Caller
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "анонимный вызывающий не видит email продавца",
			id:     "listing-1",
			caller: access.Anonymous(),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "listing-1", access.Anonymous()).
					Return(&models.ListingView{ID: "listing-1", Title: "Bakery"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"seller_email":null`,
		},
		{
			name:   "владелец видит email продавца",
			id:     "listing-1",
			caller: access.Seller("seller-1"),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "listing-1", access.Seller("seller-1")).
					Return(&models.ListingView{ID: "listing-1", SellerEmail: &email}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"seller_email":"owner@example.com"`,
		},
		{
			name:   "листинг не найден",
			id:     "missing",
			caller: access.Anonymous(),
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "missing", access.Anonymous()).
					Return(nil, models.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"could not read listing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/businesses/"+tt.id, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.CallerKey, tt.caller)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
