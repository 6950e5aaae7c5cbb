// Package register реализует HTTP-обработчик регистрации пользователей.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Request — входные данные для регистрации
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=buyer seller"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, name, password, role string) (string, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на регистрацию пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		if errors.Is(err, models.ErrConflict) {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email is already registered"))
			return
		}
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":     uid,
		"message": "user created successfully, verification email sent",
	}))
}
