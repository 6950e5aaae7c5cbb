// Package profile реализует HTTP-обработчик получения профиля
// текущего пользователя.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики получения профиля.
type Service interface {
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
}

// Handler обрабатывает запросы на получение профиля.
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

// ServeHTTP обрабатывает HTTP-запрос на получение профиля текущего пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

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

	profile, err := h.service.GetProfile(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not get profile"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": profile,
	}))
}
