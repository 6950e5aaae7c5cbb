// Package upload реализует HTTP-обработчик загрузки документа листинга.
//
// Документ принимается multipart-формой в поле file. Загружать документы
// может только продавец-владелец листинга; действуют ограничения на тип,
// размер и количество документов.
package upload

import (
	"context"
	"io"
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

// Service описывает интерфейс бизнес-логики загрузки документов.
type Service interface {
	Upload(ctx context.Context, listingID string, caller access.Caller, filename, contentType string, content []byte) (*models.DocumentMeta, error)
}

// Handler обрабатывает запросы на загрузку документа листинга.
type Handler struct {
	log         *slog.Logger
	service     Service
	maxFormSize int64
}

// New создает новый Handler с переданными логгером и сервисом.
// maxFormSize задаёт предел памяти разбора multipart-формы.
func New(log *slog.Logger, service Service, maxFormSize int64) *Handler {
	return &Handler{
		log:         log,
		service:     service,
		maxFormSize: maxFormSize,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на загрузку документа листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.upload"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	listingID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.maxFormSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("missing file in multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing file"))
		return
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read uploaded file", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read uploaded file"))
		return
	}

	caller := middlewarectx.CallerFromContext(r.Context())
	meta, err := h.service.Upload(r.Context(), listingID, caller,
		header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		log.Error("failed to upload document", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not upload document"))
		return
	}

	log.Info("document uploaded",
		slog.String("listing_id", listingID), slog.String("document_id", meta.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"document": meta,
	}))
}
