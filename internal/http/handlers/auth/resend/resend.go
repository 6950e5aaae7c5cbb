// Package resend реализует HTTP-обработчик повторной отправки
// письма подтверждения email.
package resend

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики повторной отправки токена.
type Service interface {
	ResendVerification(ctx context.Context, userUID string) error
}

// Handler обрабатывает запросы на повторную отправку письма подтверждения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на повторную отправку письма подтверждения.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.ResendVerification(r.Context(), userUID); err != nil {
		log.Error("failed to resend verification email", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not resend verification email"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "verification email sent",
	}))
}
