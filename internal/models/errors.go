// Package models содержит сентинельные ошибки доменного уровня.
// Сервисы оборачивают их через fmt.Errorf("%s: %w", op, err),
// HTTP-обработчики сопоставляют их со статус-кодами через errors.Is.
package models

import "errors"

var (
	// ErrNotFound — запрошенный листинг, пользователь или документ не существует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — отсутствует или недействителен токен доступа.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden — пользователь аутентифицирован, но не владелец и не имеет нужной роли.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict — повторная регистрация с уже занятым email.
	ErrConflict = errors.New("already exists")
	// ErrValidation — некорректные входные данные (неверный токен подтверждения,
	// недопустимый тип документа, превышение лимитов).
	ErrValidation = errors.New("validation failed")
)
