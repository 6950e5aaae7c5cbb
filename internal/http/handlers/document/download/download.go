// Package download реализует HTTP-обработчик скачивания документа листинга.
//
// Содержимое документа отдаётся владельцу листинга и покупателю
// с активной подпиской; остальным возвращается 403.
package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// Service описывает интерфейс бизнес-логики выдачи документов.
type Service interface {
	Get(ctx context.Context, listingID, documentID string, caller access.Caller) (*models.Document, error)
}

// Handler обрабатывает запросы на скачивание документа листинга.
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

// ServeHTTP обрабатывает HTTP-запрос на скачивание документа листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.download"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	listingID := chi.URLParam(r, "id")
	documentID := chi.URLParam(r, "documentID")

	caller := middlewarectx.CallerFromContext(r.Context())
	doc, err := h.service.Get(r.Context(), listingID, documentID, caller)
	if err != nil {
		log.Error("failed to get document", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not get document"))
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if _, err := w.Write(doc.Content); err != nil {
		log.Error("failed to write document content", sl.Err(err))
	}
}
