// Package confirm реализует HTTP-обработчик подтверждения email
// учётной записи по одноразовому токену.
package confirm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
)

// Request — входные данные для подтверждения email
type Request struct {
	Token string `json:"token" validate:"required,uuid"`
}

// Service описывает интерфейс бизнес-логики подтверждения email.
type Service interface {
	ConfirmEmail(ctx context.Context, token string) error
}

// Handler обрабатывает запросы на подтверждение email.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на подтверждение email учётной записи.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirm"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ConfirmEmail(r.Context(), req.Token); err != nil {
		log.Error("email confirmation failed", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("invalid verification token"))
		return
	}

	log.Info("email confirmed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "email verified successfully",
	}))
}
