// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, состояние подтверждения
// email и подписку покупателя. Структура используется в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Статусы подписки покупателя.
const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                string     `bson:"uid"`                           // Уникальный идентификатор пользователя
	Email              string     `bson:"email"`                         // Электронная почта (уникальная)
	Name               string     `bson:"name"`                          // Отображаемое имя
	PasswordHash       string     `bson:"password_hash"`                 // Хэш пароля пользователя
	Role               string     `bson:"role"`                          // Роль пользователя, buyer или seller
	EmailVerified      bool       `bson:"email_verified"`                // Подтверждён ли email
	VerificationToken  string     `bson:"verification_token,omitempty"`  // Одноразовый токен, присутствует только пока email не подтверждён
	SubscriptionStatus string     `bson:"subscription_status,omitempty"` // Статус подписки, только для покупателей
	SubscriptionExpiry *time.Time `bson:"subscription_expiry,omitempty"` // Дата истечения подписки, UTC
	CreatedAt          time.Time  `bson:"created_at"`
}

// SubscriptionIsActive сообщает, активна ли подписка покупателя на момент now.
// Оба условия проверяются в момент чтения, а не кешируются.
func (u *User) SubscriptionIsActive(now time.Time) bool {
	if u.Role != RoleBuyer {
		return false
	}
	return u.SubscriptionStatus == SubscriptionActive &&
		u.SubscriptionExpiry != nil &&
		u.SubscriptionExpiry.After(now)
}

// Profile — представление пользователя без чувствительных полей.
type Profile struct {
	UID                string     `json:"uid"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	EmailVerified      bool       `json:"email_verified"`
	SubscriptionStatus string     `json:"subscription_status,omitempty"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Profile строит публичный профиль пользователя.
func (u *User) Profile() *Profile {
	return &Profile{
		UID:                u.UID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		EmailVerified:      u.EmailVerified,
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionExpiry: u.SubscriptionExpiry,
		CreatedAt:          u.CreatedAt,
	}
}
