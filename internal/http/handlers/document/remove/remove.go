// Package remove реализует HTTP-обработчик удаления документа листинга.
// Удалять документы может только продавец-владелец листинга.
package remove

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
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Service описывает интерфейс бизнес-логики удаления документов.
type Service interface {
	Delete(ctx context.Context, listingID, documentID string, caller access.Caller) error
}

// Handler обрабатывает запросы на удаление документа листинга.
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

// ServeHTTP обрабатывает HTTP-запрос на удаление документа листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	listingID := chi.URLParam(r, "id")
	documentID := chi.URLParam(r, "documentID")

	caller := middlewarectx.CallerFromContext(r.Context())
	if err := h.service.Delete(r.Context(), listingID, documentID, caller); err != nil {
		log.Error("failed to remove document", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not remove document"))
		return
	}

	log.Info("document removed",
		slog.String("listing_id", listingID), slog.String("document_id", documentID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "document removed",
	}))
}
