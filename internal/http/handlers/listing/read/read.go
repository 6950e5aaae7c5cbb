// Package read реализует HTTP-обработчик получения бизнес-листинга по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения
// и возвращает проекцию листинга для текущего вызывающего. Каждый успешный
// запрос увеличивает счётчик просмотров листинга на единицу.
package read

import (
	"context"
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

// Service описывает интерфейс бизнес-логики чтения листинга.
type Service interface {
	Read(ctx context.Context, id string, caller access.Caller) (*models.ListingView, error)
}

// Handler обрабатывает запросы на получение листинга по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение листинга по ID.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing listing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing listing id"))
		return
	}

	caller := middlewarectx.CallerFromContext(r.Context())
	view, err := h.service.Read(r.Context(), id, caller)
	if err != nil {
		log.Error("failed to read listing", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not read listing"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"listing": view,
	}))
}
