// Package repository реализует хранилище данных на основе MongoDB
// для управления бизнес-листингами и пользователями. Предоставляет методы
// создания, чтения, обновления и удаления записей, атомарные инкременты
// счётчиков и условные переходы статусов.
package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Названия коллекций.
const (
	listingsCollection = "business_listings"
	usersCollection    = "users"
)

// Storage инкапсулирует коллекции MongoDB и реализует методы
// работы с листингами и пользователями.
type Storage struct {
	listings *mongo.Collection
	users    *mongo.Collection
}

// New создает репозиторий поверх выбранной базы данных.
func New(db *mongo.Database) *Storage {
	return &Storage{
		listings: db.Collection(listingsCollection),
		users:    db.Collection(usersCollection),
	}
}
