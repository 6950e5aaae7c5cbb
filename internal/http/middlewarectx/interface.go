package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Service описывает интерфейс сервиса аутентификации для middleware:
// проверка JWT токена и загрузка пользователя для вычисления прав доступа.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}
