// Package sellerlist реализует HTTP-обработчик списка листингов продавца.
//
// Продавец видит все свои листинги во всех статусах, включая черновики
// и ожидающие подтверждения или оплаты.
package sellerlist

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
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Service описывает интерфейс бизнес-логики списка листингов продавца.
type Service interface {
	ListBySeller(ctx context.Context, caller access.Caller) ([]*models.ListingView, error)
}

// Handler обрабатывает запросы списка листингов продавца.
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

// ServeHTTP обрабатывает HTTP-запрос списка листингов продавца.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.sellerlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller := middlewarectx.CallerFromContext(r.Context())
	views, err := h.service.ListBySeller(r.Context(), caller)
	if err != nil {
		log.Error("failed to list seller listings", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not list seller businesses"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"businesses": views,
	}))
}
