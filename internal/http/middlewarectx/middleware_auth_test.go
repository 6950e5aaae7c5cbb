package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// MockAuthService реализует интерфейс middlewarectx.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func callerCapturingHandler(captured *access.Caller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = CallerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTMiddleware(t *testing.T) {
	t.Run("без заголовка Authorization возвращает 401", func(t *testing.T) {
		var caller access.Caller
		handler := JWTMiddleware(new(MockAuthService), newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("невалидный токен возвращает 401", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "bad-token").
			Return(nil, models.ErrUnauthorized).Once()

		var caller access.Caller
		handler := JWTMiddleware(service, newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("подписка покупателя вычисляется в момент запроса", func(t *testing.T) {
		expiry := time.Now().UTC().Add(time.Hour)
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "good-token").
			Return(&jwt.CustomClaims{UserUID: "buyer-1", Role: models.RoleBuyer}, nil).Once()
		service.On("GetUser", mock.Anything, "buyer-1").
			Return(&models.User{
				UID: "buyer-1", Role: models.RoleBuyer,
				SubscriptionStatus: models.SubscriptionActive,
				SubscriptionExpiry: &expiry,
			}, nil).Once()

		var caller access.Caller
		handler := JWTMiddleware(service, newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, access.Buyer("buyer-1", true), caller)
		service.AssertExpectations(t)
	})
}

func TestIdentityMiddleware(t *testing.T) {
	t.Run("без токена запрос продолжается анонимно", func(t *testing.T) {
		var caller access.Caller
		handler := IdentityMiddleware(new(MockAuthService), newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, access.Anonymous(), caller)
	})

	t.Run("невалидный токен игнорируется", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "bad-token").
			Return(nil, models.ErrUnauthorized).Once()

		var caller access.Caller
		handler := IdentityMiddleware(service, newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, access.Anonymous(), caller)
	})

	t.Run("валидный токен продавца попадает в контекст", func(t *testing.T) {
		service := new(MockAuthService)
		service.On("ValidateToken", mock.Anything, "good-token").
			Return(&jwt.CustomClaims{UserUID: "seller-1", Role: models.RoleSeller}, nil).Once()
		service.On("GetUser", mock.Anything, "seller-1").
			Return(&models.User{UID: "seller-1", Role: models.RoleSeller}, nil).Once()

		var caller access.Caller
		handler := IdentityMiddleware(service, newNoopLogger())(callerCapturingHandler(&caller))

		req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, access.Seller("seller-1"), caller)
	})
}
