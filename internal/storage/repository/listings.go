package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// maxCatalogResults — верхняя граница выдачи публичного каталога.
const maxCatalogResults = 100

// CreateListing сохраняет новый листинг и возвращает его ID.
func (s *Storage) CreateListing(ctx context.Context, listing models.BusinessListing) (string, error) {
	const op = "storage.CreateListing"
	if _, err := s.listings.InsertOne(ctx, listing); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return listing.ID, nil
}

// GetListing возвращает листинг по ID или models.ErrNotFound.
func (s *Storage) GetListing(ctx context.Context, id string) (*models.BusinessListing, error) {
	const op = "storage.GetListing"
	var listing models.BusinessListing
	err := s.listings.FindOne(ctx, bson.M{"id": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &listing, nil
}

// ListListings возвращает активные листинги по фильтрам каталога,
// отсортированные с учётом featured_first, не более maxCatalogResults.
func (s *Storage) ListListings(ctx context.Context, filters models.ListingFilters) ([]*models.BusinessListing, error) {
	const op = "storage.ListListings"

	query := bson.M{"status": models.StatusActive}
	if filters.Industry != nil {
		query["industry"] = *filters.Industry
	}
	if filters.Region != nil {
		query["region"] = *filters.Region
	}
	if filters.RiskGrade != nil {
		query["risk_grade"] = *filters.RiskGrade
	}
	if filters.MinRevenue != nil || filters.MaxRevenue != nil {
		revenue := bson.M{}
		if filters.MinRevenue != nil {
			revenue["$gte"] = *filters.MinRevenue
		}
		if filters.MaxRevenue != nil {
			revenue["$lte"] = *filters.MaxRevenue
		}
		query["annual_revenue"] = revenue
	}
	if filters.MinPrice != nil || filters.MaxPrice != nil {
		price := bson.M{}
		if filters.MinPrice != nil {
			price["$gte"] = *filters.MinPrice
		}
		if filters.MaxPrice != nil {
			price["$lte"] = *filters.MaxPrice
		}
		query["asking_price"] = price
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	direction := -1
	if filters.SortOrder == "asc" {
		direction = 1
	}
	sort := bson.D{}
	if filters.FeaturedFirst {
		sort = append(sort, bson.E{Key: "featured", Value: -1})
	}
	sort = append(sort, bson.E{Key: sortBy, Value: direction})

	cursor, err := s.listings.Find(ctx, query,
		options.Find().SetSort(sort).SetLimit(maxCatalogResults))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var result []*models.BusinessListing
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListListingsBySeller возвращает все листинги продавца, независимо от статуса.
func (s *Storage) ListListingsBySeller(ctx context.Context, sellerID string) ([]*models.BusinessListing, error) {
	const op = "storage.ListListingsBySeller"
	cursor, err := s.listings.Find(ctx, bson.M{"seller_id": sellerID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var result []*models.BusinessListing
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateListingFields применяет разреженное обновление одним $set
// вместе с updated_at. Возвращает models.ErrNotFound, если листинга нет.
func (s *Storage) UpdateListingFields(ctx context.Context, id string, fields map[string]any) error {
	const op = "storage.UpdateListingFields"
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.listings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// IncrementViews атомарно увеличивает счётчик просмотров на единицу.
func (s *Storage) IncrementViews(ctx context.Context, id string) error {
	const op = "storage.IncrementViews"
	res, err := s.listings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// IncrementInquiries атомарно увеличивает счётчик запросов покупателей.
func (s *Storage) IncrementInquiries(ctx context.Context, id string) error {
	const op = "storage.IncrementInquiries"
	res, err := s.listings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"inquiries": 1}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// UpdateListingStatus выполняет условный переход статуса: документ
// обновляется только если текущий статус входит в from, поэтому
// конкурирующие переходы не могут перемешаться. Возвращает true,
// если переход применился.
func (s *Storage) UpdateListingStatus(ctx context.Context, id string, from []models.BusinessStatus, to models.BusinessStatus) (bool, error) {
	const op = "storage.UpdateListingStatus"
	res, err := s.listings.UpdateOne(ctx,
		bson.M{"id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount > 0, nil
}

// ConfirmListingEmail сверяет одноразовый токен и атомарно переводит
// листинг из pending_email_verification в pending_payment, очищая токен.
// Возвращает true, если токен совпал и переход применился.
func (s *Storage) ConfirmListingEmail(ctx context.Context, id, token string) (bool, error) {
	const op = "storage.ConfirmListingEmail"
	res, err := s.listings.UpdateOne(ctx,
		bson.M{
			"id":                 id,
			"verification_token": token,
			"status":             models.StatusPendingEmailVerification,
		},
		bson.M{
			"$set":   bson.M{"status": models.StatusPendingPayment, "updated_at": time.Now().UTC()},
			"$unset": bson.M{"verification_token": ""},
		})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount > 0, nil
}

// PushDocument добавляет документ к листингу через $push при условии,
// что документов меньше maxDocs. Возвращает true, если документ добавлен.
func (s *Storage) PushDocument(ctx context.Context, id string, doc models.Document, maxDocs int) (bool, error) {
	const op = "storage.PushDocument"
	res, err := s.listings.UpdateOne(ctx,
		bson.M{
			"id": id,
			fmt.Sprintf("documents.%d", maxDocs-1): bson.M{"$exists": false},
		},
		bson.M{
			"$push": bson.M{"documents": doc},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount > 0, nil
}

// PullDocument удаляет документ листинга через $pull.
// Возвращает true, если документ существовал и был удалён.
func (s *Storage) PullDocument(ctx context.Context, id, documentID string) (bool, error) {
	const op = "storage.PullDocument"
	res, err := s.listings.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{
			"$pull": bson.M{"documents": bson.M{"id": documentID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return false, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return res.ModifiedCount > 0, nil
}

// CountListings возвращает количество листингов в коллекции.
func (s *Storage) CountListings(ctx context.Context) (int64, error) {
	const op = "storage.CountListings"
	count, err := s.listings.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
