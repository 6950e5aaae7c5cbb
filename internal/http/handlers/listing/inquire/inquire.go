// Package inquire реализует HTTP-обработчик запроса покупателя по листингу.
package inquire

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики запросов покупателей.
type Service interface {
	Inquire(ctx context.Context, id string) error
}

// Handler обрабатывает запросы покупателей по листингу.
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

// ServeHTTP обрабатывает HTTP-запрос покупателя по листингу.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.inquire"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Inquire(r.Context(), id); err != nil {
		log.Error("failed to register inquiry", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not register inquiry"))
		return
	}

	log.Info("inquiry registered", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "inquiry registered",
	}))
}
