// Package listingfee реализует HTTP-обработчик оплаты размещения листинга.
//
// Платёж имитируется: исход определяет настраиваемый генератор решений.
// Отказ платежа возвращается как нормальный результат со статусом failed.
package listingfee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики оплаты листинга.
type Service interface {
	PayListingFee(ctx context.Context, businessID string, amount float64) (*models.PaymentResult, error)
}

// Handler обрабатывает запросы на оплату размещения листинга.
type Handler struct {
	log           *slog.Logger
	service       Service
	validate      *validator.Validate
	defaultAmount float64
}

// New создает новый Handler. defaultAmount используется, когда клиент
// не указал сумму в запросе.
func New(log *slog.Logger, service Service, defaultAmount float64) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		validate:      validator.New(),
		defaultAmount: defaultAmount,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на оплату размещения листинга.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.listingfee"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	businessID := chi.URLParam(r, "id")

	req := models.DummyPayment{Amount: h.defaultAmount}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.PayListingFee(r.Context(), businessID, req.Amount)
	if err != nil {
		log.Error("failed to process listing fee payment", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not process payment"))
		return
	}

	log.Info("listing fee payment processed",
		slog.String("business_id", businessID), slog.String("status", result.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment": result,
	}))
}
