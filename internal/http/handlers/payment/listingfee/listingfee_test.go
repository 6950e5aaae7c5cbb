package listingfee

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

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// MockService реализует интерфейс listingfee.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) PayListingFee(ctx context.Context, businessID string, amount float64) (*models.PaymentResult, error) {
	args := m.Called(ctx, businessID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentResult), args.Error(1)
}

func TestListingFeeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "пустое тело использует сумму по умолчанию",
			body: "",
			setupMock: func(m *MockService) {
				m.On("PayListingFee", mock.Anything, "listing-1", 99.0).
					Return(&models.PaymentResult{
						PaymentID:  "pay-1",
						Status:     models.PaymentSucceeded,
						BusinessID: "listing-1",
						Amount:     99,
						Message:    "Payment successful! Your business listing is now active.",
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"success"`,
		},
		{
			name: "отказ платежа возвращается со статусом failed",
			body: `{"amount":99}`,
			setupMock: func(m *MockService) {
				m.On("PayListingFee", mock.Anything, "listing-1", 99.0).
					Return(&models.PaymentResult{
						PaymentID: "pay-2",
						Status:    models.PaymentFailed,
						Amount:    99,
						Message:   "Payment failed. Please try again.",
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"failed"`,
		},
		{
			name:           "отрицательная сумма отклоняется",
			body:           `{"amount":-5}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Amount is out of range`,
		},
		{
			name: "листинг не в статусе оплаты",
			body: `{"amount":99}`,
			setupMock: func(m *MockService) {
				m.On("PayListingFee", mock.Anything, "listing-1", 99.0).
					Return(nil, models.ErrValidation).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"could not process payment"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, 99)

			var body *strings.Reader
			if tt.body == "" {
				body = strings.NewReader("")
			} else {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "/businesses/listing-1/payment", body)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "listing-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
