// Package subscriptionfee реализует HTTP-обработчик оплаты подписки
// покупателя. Успешный платёж активирует подписку на настроенный срок.
package subscriptionfee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс бизнес-логики оплаты подписки.
type Service interface {
	PaySubscriptionFee(ctx context.Context, userUID string, amount float64) (*models.PaymentResult, error)
}

// Handler обрабатывает запросы на оплату подписки покупателя.
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

// ServeHTTP обрабатывает HTTP-запрос на оплату подписки покупателя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.subscriptionfee"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

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

	result, err := h.service.PaySubscriptionFee(r.Context(), userUID, req.Amount)
	if err != nil {
		log.Error("failed to process subscription payment", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("could not process payment"))
		return
	}

	log.Info("subscription payment processed",
		slog.String("user_uid", userUID), slog.String("status", result.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment": result,
	}))
}
