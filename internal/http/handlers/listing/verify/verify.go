// Package verify реализует HTTP-обработчик подтверждения email листинга.
//
// Совпадение одноразового токена переводит листинг из
// pending_email_verification в pending_payment.
package verify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
)

// Request представляет структуру запроса подтверждения email листинга.
type Request struct {
	Token string `json:"token" validate:"required,uuid"`
}

// Service описывает интерфейс бизнес-логики подтверждения email листинга.
type Service interface {
	VerifyEmail(ctx context.Context, id, token string) error
}

// Handler обрабатывает запросы на подтверждение email листинга.
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

// ServeHTTP обрабатывает HTTP-запрос на подтверждение email листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

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

	if err := h.service.VerifyEmail(r.Context(), id, req.Token); err != nil {
		log.Error("failed to verify listing email", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not verify listing email"))
		return
	}

	log.Info("listing email verified", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "email verified, listing is awaiting payment",
	}))
}
