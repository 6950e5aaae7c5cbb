// Package list реализует HTTP-обработчик публичного каталога листингов.
//
// В каталог попадают только листинги в статусе active. Параметры запроса
// задают фильтры по отрасли, региону, выручке, цене и рейтингу риска,
// а также сортировку; продвигаемые листинги показываются первыми.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, filters models.ListingFilters) ([]*models.ListingCard, error)
}

// Handler обрабатывает запросы каталога листингов.
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

// ServeHTTP обрабатывает HTTP-запрос каталога листингов.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.listing.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filters, err := parseFilters(r)
	if err != nil {
		log.Error("failed to parse filters", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid filter parameters"))
		return
	}

	cards, err := h.service.List(r.Context(), filters)
	if err != nil {
		log.Error("failed to list listings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list businesses"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"businesses": cards,
	}))
}

// parseFilters собирает фильтры каталога из параметров запроса.
func parseFilters(r *http.Request) (models.ListingFilters, error) {
	q := r.URL.Query()
	filters := models.ListingFilters{
		SortBy:        q.Get("sort_by"),
		SortOrder:     q.Get("sort_order"),
		FeaturedFirst: true,
	}
	if v := q.Get("featured_first"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return filters, err
		}
		filters.FeaturedFirst = featured
	}
	if v := q.Get("industry"); v != "" {
		filters.Industry = &v
	}
	if v := q.Get("region"); v != "" {
		filters.Region = &v
	}
	if v := q.Get("risk_grade"); v != "" {
		filters.RiskGrade = &v
	}
	for param, target := range map[string]**float64{
		"min_revenue": &filters.MinRevenue,
		"max_revenue": &filters.MaxRevenue,
		"min_price":   &filters.MinPrice,
		"max_price":   &filters.MaxPrice,
	} {
		if v := q.Get(param); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return filters, err
			}
			*target = &parsed
		}
	}
	return filters, nil
}
