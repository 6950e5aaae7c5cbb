// Package storage реализует подключение к MongoDB — внешнему
// документному хранилищу маркетплейса.
package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/business-marketplace/internal/config"
)

// Storage инкапсулирует клиент MongoDB и выбранную базу данных.
type Storage struct {
	Client *mongo.Client
	Db     *mongo.Database
}

// New подключается к MongoDB, проверяет соединение и создает индексы.
func New(ctx context.Context, cfg config.MongoConnection) (*Storage, error) {
	const op = "storage.New"

	connectCtx, cancel := context.WithTimeout(ctx, cfg.TimeoutMongo)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{
		Client: client,
		Db:     client.Database(cfg.Database),
	}
	if err := s.ensureIndexes(connectCtx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ensureIndexes создает индексы по полям, используемым в фильтрах:
// уникальный email пользователя, id и seller_id листинга, статус.
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.Db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = s.Db.Collection("business_listings").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

// Close разрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
