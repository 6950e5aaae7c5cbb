// Package options реализует HTTP-обработчики словарей фильтров каталога:
// отрасли, регионы и рейтинги риска.
package options

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс выдачи словарей фильтров.
type Service interface {
	Industries() []models.FilterOption
	Regions() []models.FilterOption
	RiskGrades() []models.FilterOption
}

// Handler обрабатывает запросы словарей фильтров каталога.
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

// Industries обрабатывает запрос словаря отраслей.
func (h *Handler) Industries(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "handlers.meta.industries", "industries", h.service.Industries())
}

// Regions обрабатывает запрос словаря регионов.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "handlers.meta.regions", "regions", h.service.Regions())
}

// RiskGrades обрабатывает запрос словаря рейтингов риска.
func (h *Handler) RiskGrades(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "handlers.meta.riskgrades", "risk_grades", h.service.RiskGrades())
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op, key string, options []models.FilterOption) {
	h.log.Debug("serving filter options",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		key: options,
	}))
}
