package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"classifieds/internal/cache"
	"classifieds/internal/models"
	"classifieds/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// AdvertisementRepository defines persistence operations for advertisements.
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id uint) (*models.Advertisement, error)
	List(ctx context.Context, limit, offset int) ([]models.Advertisement, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Advertisement, error)
	// Search matches query as a case-insensitive substring of the title.
	Search(ctx context.Context, query string, limit, offset int) ([]models.Advertisement, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id uint) error
}

type advertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository returns a new AdvertisementRepository implementation.
func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *advertisementRepository) GetByID(ctx context.Context, id uint) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := cache.Aside(ctx, "advertisement", cache.AdvertisementKey(id), &ad, cache.AdvertisementTTL, func() error {
		if err := r.db.WithContext(ctx).First(&ad, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Advertisement", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *advertisementRepository) List(ctx context.Context, limit, offset int) ([]models.Advertisement, error) {
	return r.find(r.db.WithContext(ctx), limit, offset)
}

func (r *advertisementRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]models.Advertisement, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_id = ?", ownerID), limit, offset)
}

// Search uses ILIKE on Postgres so non-ASCII titles fold case. SQLite's LOWER
// only folds ASCII.
func (r *advertisementRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.Advertisement, error) {
	ctx, span := observability.StartSpan(ctx, "AdvertisementRepository.Search",
		attribute.String("search.query", query))
	defer span.End()

	pattern := "%" + escapeLike(query) + "%"
	cond := `LOWER(title) LIKE LOWER(?) ESCAPE '\'`
	if r.db.Dialector.Name() == "postgres" {
		cond = `title ILIKE ? ESCAPE '\'`
	}
	ads, err := r.find(r.db.WithContext(ctx).Where(cond, pattern), limit, offset)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", len(ads)))
	return ads, nil
}

// find applies id ordering and paging to scope. A non-positive limit means no limit.
func (r *advertisementRepository) find(scope *gorm.DB, limit, offset int) ([]models.Advertisement, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}
	ads := []models.Advertisement{}
	if err := scope.Order("id ASC").Limit(limit).Offset(offset).Find(&ads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

// Update writes the editable fields of ad. Ownership is not changed.
func (r *advertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	ad.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Advertisement{ID: ad.ID}).
		Select("Title", "Description", "Type", "Category", "Price", "Location", "UpdatedAt").
		Updates(ad)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Advertisement", ad.ID)
	}
	cache.InvalidateAdvertisement(ctx, ad.ID)
	return nil
}

func (r *advertisementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Advertisement{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Advertisement", id)
	}
	cache.InvalidateAdvertisement(ctx, id)
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in s match literally under ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
