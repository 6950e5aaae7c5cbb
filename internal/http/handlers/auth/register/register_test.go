package register

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, name, password, role string) (string, error) {
	args := m.Called(ctx, email, name, password, role)
	return args.String(0), args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация покупателя",
			body: `{"email":"buyer@example.com","name":"Buyer","password":"secret123","role":"buyer"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "buyer@example.com", "Buyer", "secret123", "buyer").
					Return("uid-1", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"uid":"uid-1"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"email":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "недопустимая роль",
			body:           `{"email":"x@example.com","name":"X","password":"secret123","role":"admin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Role must be one of the allowed values`,
		},
		{
			name:           "слишком короткий пароль",
			body:           `{"email":"x@example.com","name":"X","password":"123","role":"buyer"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password has invalid length`,
		},
		{
			name: "повторная регистрация email",
			body: `{"email":"dup@example.com","name":"Dup","password":"secret123","role":"seller"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "dup@example.com", "Dup", "secret123", "seller").
					Return("", models.ErrConflict).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"email is already registered"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
