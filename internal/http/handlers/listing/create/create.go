// Package create реализует HTTP-обработчик создания бизнес-листинга.
//
// Аутентифицированный продавец получает листинг в статусе draft;
// анонимный вызывающий — в статусе pending_email_verification с письмом
// подтверждения на указанный email.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Service описывает интерфейс бизнес-логики создания листинга.
type Service interface {
	Create(ctx context.Context, caller access.Caller, req models.DummyListing) (*models.BusinessListing, error)
}

// Handler обрабатывает запросы на создание листинга.
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

// ServeHTTP обрабатывает HTTP-запрос на создание бизнес-листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyListing
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

	caller := middlewarectx.CallerFromContext(r.Context())
	entry, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		log.Error("failed to create listing", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not create listing"))
		return
	}

	log.Info("listing created",
		slog.String("id", entry.ID), slog.String("status", string(entry.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     entry.ID,
		"status": entry.Status,
	}))
}
