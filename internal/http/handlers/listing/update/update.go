// Package update реализует HTTP-обработчик разреженного обновления листинга.
//
// Обновлять листинг может только продавец-владелец; применяются только
// заполненные поля запроса, одним атомарным обновлением.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Service описывает интерфейс бизнес-логики обновления листинга.
type Service interface {
	Update(ctx context.Context, id string, caller access.Caller, req models.UpdateListing) (*models.ListingView, error)
}

// Handler обрабатывает запросы на обновление листинга.
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

// ServeHTTP обрабатывает HTTP-запрос на обновление листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.UpdateListing
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	caller := middlewarectx.CallerFromContext(r.Context())
	view, err := h.service.Update(r.Context(), id, caller, req)
	if err != nil {
		log.Error("failed to update listing", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not update listing"))
		return
	}

	log.Info("listing updated", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"listing": view,
	}))
}
