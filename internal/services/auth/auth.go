// Package auth содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: регистрация, вход, проверка JWT и подтверждение email.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/password"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// SetVerificationToken записывает новый токен подтверждения email.
	SetVerificationToken(ctx context.Context, userUID, token string) error
	// ConfirmUserEmail сверяет токен и помечает email подтверждённым.
	ConfirmUserEmail(ctx context.Context, token string) (bool, error)
}

// Notifier описывает отправку писем подтверждения.
type Notifier interface {
	SendVerification(msg models.VerificationEmail) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	notifier Notifier
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью
// buyer или seller. Покупатели получают подписку в статусе pending.
// Письмо с токеном подтверждения отправляется через очередь уведомлений;
// сбой отправки не отменяет регистрацию.
func (s *Service) Register(ctx context.Context, email, name, rawPassword, role string) (string, error) {
	const op = "auth.Register"

	if role != models.RoleBuyer && role != models.RoleSeller {
		return "", fmt.Errorf("%s: unknown role %q: %w", op, role, models.ErrValidation)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		UID:               uuid.NewString(),
		Email:             email,
		Name:              name,
		PasswordHash:      hashed,
		Role:              role,
		VerificationToken: uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
	}
	if role == models.RoleBuyer {
		user.SubscriptionStatus = models.SubscriptionPending
	}

	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.String("uid", uid), slog.String("role", role))

	err = s.notifier.SendVerification(models.VerificationEmail{
		Kind:  models.VerificationKindUser,
		Email: user.Email,
		Name:  user.Name,
		Token: user.VerificationToken,
	})
	if err != nil {
		s.log.Warn("failed to send verification email", sl.Err(err))
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT с uid, email и ролью.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.Profile, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: invalid credentials: %w", op, models.ErrUnauthorized)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: invalid credentials: %w", op, models.ErrUnauthorized)
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user.Profile(), nil
}

// ValidateToken проверяет JWT и возвращает claims, если токен корректен.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	return claims, nil
}

// GetUser возвращает пользователя по UID.
func (s *Service) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.GetUser"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetProfile возвращает профиль пользователя без чувствительных полей.
func (s *Service) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "auth.GetProfile"
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.Profile(), nil
}

// ConfirmEmail сверяет одноразовый токен подтверждения учётной записи.
// Несовпадение токена ничего не меняет.
func (s *Service) ConfirmEmail(ctx context.Context, token string) error {
	const op = "auth.ConfirmEmail"
	ok, err := s.users.ConfirmUserEmail(ctx, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: invalid verification token: %w", op, models.ErrValidation)
	}
	return nil
}

// ResendVerification выпускает новый токен подтверждения и отправляет письмо.
func (s *Service) ResendVerification(ctx context.Context, userUID string) error {
	const op = "auth.ResendVerification"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.EmailVerified {
		return fmt.Errorf("%s: email already verified: %w", op, models.ErrValidation)
	}

	token := uuid.NewString()
	if err := s.users.SetVerificationToken(ctx, userUID, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	err = s.notifier.SendVerification(models.VerificationEmail{
		Kind:  models.VerificationKindUser,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	})
	if err != nil {
		s.log.Warn("failed to send verification email", sl.Err(err))
	}
	return nil
}
