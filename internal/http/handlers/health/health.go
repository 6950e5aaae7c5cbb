// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/business-marketplace/internal/http/response"
)

// Handler отвечает на запросы проверки живости.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

// ServeHTTP обрабатывает HTTP-запрос проверки живости.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "service is healthy",
	}))
}
