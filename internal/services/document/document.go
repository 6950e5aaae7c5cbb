// Package document реализует правила работы с документами листинга:
// загрузка и удаление доступны только продавцу-владельцу, содержимое
// отдаётся по политике видимости, действуют ограничения на тип,
// размер и количество документов.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/business-marketplace/internal/config"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
	"github.com/magabrotheeeer/business-marketplace/internal/services/access"
)

// ListingRepository определяет методы хранилища для работы с документами.
type ListingRepository interface {
	// GetListing возвращает листинг по ID.
	GetListing(ctx context.Context, id string) (*models.BusinessListing, error)
	// PushDocument добавляет документ, если их меньше maxDocs.
	PushDocument(ctx context.Context, id string, doc models.Document, maxDocs int) (bool, error)
	// PullDocument удаляет документ листинга.
	PullDocument(ctx context.Context, id, documentID string) (bool, error)
}

// Service реализует бизнес-логику документов листинга.
type Service struct {
	repo ListingRepository
	cfg  config.Documents
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ListingRepository, cfg config.Documents, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

// Upload прикрепляет документ к листингу. Разрешено только владельцу;
// отклоняется без изменений при недопустимом типе содержимого,
// превышении размера или достижении лимита документов.
func (s *Service) Upload(ctx context.Context, listingID string, caller access.Caller, filename, contentType string, content []byte) (*models.DocumentMeta, error) {
	const op = "document.Upload"

	if contentType != s.cfg.AllowedType {
		return nil, fmt.Errorf("%s: content type %q is not allowed: %w", op, contentType, models.ErrValidation)
	}
	if int64(len(content)) > s.cfg.MaxSizeBytes {
		return nil, fmt.Errorf("%s: document exceeds size limit: %w", op, models.ErrValidation)
	}

	entry, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !caller.IsOwner(entry) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	doc := models.Document{
		ID:          uuid.NewString(),
		Filename:    filename,
		Size:        int64(len(content)),
		ContentType: contentType,
		Content:     content,
		UploadedAt:  time.Now().UTC(),
	}

	ok, err := s.repo.PushDocument(ctx, listingID, doc, s.cfg.MaxPerListing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		// Условие $push не сработало: лимит документов уже достигнут.
		return nil, fmt.Errorf("%s: document limit reached: %w", op, models.ErrValidation)
	}

	s.log.Info("document uploaded",
		slog.String("listing_id", listingID), slog.String("document_id", doc.ID))
	meta := doc.Meta()
	return &meta, nil
}

// Get возвращает документ с содержимым. Содержимое доступно владельцу
// и покупателю с активной подпиской, остальным — models.ErrForbidden.
func (s *Service) Get(ctx context.Context, listingID, documentID string, caller access.Caller) (*models.Document, error) {
	const op = "document.Get"

	entry, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !caller.CanViewContacts(entry) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	for i := range entry.Documents {
		if entry.Documents[i].ID == documentID {
			return &entry.Documents[i], nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
}

// Delete удаляет документ листинга. Разрешено только владельцу.
func (s *Service) Delete(ctx context.Context, listingID, documentID string, caller access.Caller) error {
	const op = "document.Delete"

	entry, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !caller.IsOwner(entry) {
		return fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}

	removed, err := s.repo.PullDocument(ctx, listingID, documentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !removed {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.log.Info("document removed",
		slog.String("listing_id", listingID), slog.String("document_id", documentID))
	return nil
}
