// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// загружает пользователя и в случае успеха добавляет в контекст личность вызывающего
// (access.Caller) для дальнейшего использования в обработчиках.
//
// IdentityMiddleware делает то же самое, но токен необязателен: запрос без токена
// продолжается от имени анонимного вызывающего.
//
// В случае ошибки проверки JWTMiddleware возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// CallerKey — ключ для личности вызывающего в контексте
	CallerKey Key = "caller"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
)

// CallerFromContext возвращает личность вызывающего из контекста запроса.
// Если личность не установлена, вызывающий считается анонимным.
func CallerFromContext(ctx context.Context) access.Caller {
	if caller, ok := ctx.Value(CallerKey).(access.Caller); ok {
		return caller
	}
	return access.Anonymous()
}

// JWTMiddleware возвращает HTTP middleware, который требует валидный JWT
// в заголовке Authorization.
//
// Если токен валиден, добавляет личность вызывающего и его UID в контекст
// запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			caller, userUID, err := resolveCaller(r.Context(), authService, tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			ctx = context.WithValue(ctx, UserUID, userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityMiddleware возвращает HTTP middleware с необязательной аутентификацией:
// при наличии валидного токена личность вызывающего попадает в контекст,
// иначе запрос продолжается от имени анонимного вызывающего.
func IdentityMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.IdentityMiddleware"

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			caller, userUID, err := resolveCaller(r.Context(), authService, tokenStr)
			if err != nil {
				log.Warn("ignoring invalid token", slog.String("op", op), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			ctx = context.WithValue(ctx, UserUID, userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveCaller проверяет токен и строит личность вызывающего по
// актуальному состоянию пользователя: активность подписки покупателя
// вычисляется в момент запроса, а не берётся из токена.
func resolveCaller(ctx context.Context, authService Service, token string) (access.Caller, string, error) {
	claims, err := authService.ValidateToken(ctx, token)
	if err != nil {
		return access.Anonymous(), "", err
	}
	user, err := authService.GetUser(ctx, claims.UserUID)
	if err != nil {
		return access.Anonymous(), "", err
	}
	return access.FromUser(user, time.Now().UTC()), user.UID, nil
}
