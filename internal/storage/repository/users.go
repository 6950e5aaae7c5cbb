package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
// Повторная регистрация с занятым email возвращает models.ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return user.UID, nil
}

// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUser возвращает пользователя по его UID или models.ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"uid": userUID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// SetVerificationToken записывает новый одноразовый токен подтверждения email.
func (s *Storage) SetVerificationToken(ctx context.Context, userUID, token string) error {
	const op = "storage.SetVerificationToken"
	res, err := s.users.UpdateOne(ctx,
		bson.M{"uid": userUID, "email_verified": false},
		bson.M{"$set": bson.M{"verification_token": token}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ConfirmUserEmail сверяет токен и атомарно помечает email подтверждённым,
// очищая токен. Возвращает true, если токен совпал.
func (s *Storage) ConfirmUserEmail(ctx context.Context, token string) (bool, error) {
	const op = "storage.ConfirmUserEmail"
	res, err := s.users.UpdateOne(ctx,
		bson.M{"verification_token": token, "email_verified": false},
		bson.M{
			"$set":   bson.M{"email_verified": true},
			"$unset": bson.M{"verification_token": ""},
		})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount > 0, nil
}

// ActivateSubscription переводит подписку покупателя в статус active
// с новой датой истечения.
func (s *Storage) ActivateSubscription(ctx context.Context, userUID string, expiry time.Time) error {
	const op = "storage.ActivateSubscription"
	res, err := s.users.UpdateOne(ctx,
		bson.M{"uid": userUID, "role": models.RoleBuyer},
		bson.M{"$set": bson.M{
			"subscription_status": models.SubscriptionActive,
			"subscription_expiry": expiry,
		}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
