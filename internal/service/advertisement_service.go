package service

import (
	"context"
	"strings"

	"classifieds/internal/auth"
	"classifieds/internal/middleware"
	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
)

type AdvertisementService struct {
	adRepo   repository.AdvertisementRepository
	userRepo repository.UserRepository
}

type ListInput struct {
	Limit  int
	Offset int
}

func NewAdvertisementService(adRepo repository.AdvertisementRepository, userRepo repository.UserRepository) *AdvertisementService {
	return &AdvertisementService{adRepo: adRepo, userRepo: userRepo}
}

// Create stores a listing owned by actor. Fields are copied verbatim.
func (s *AdvertisementService) Create(ctx context.Context, actor *models.User, fields models.AdvertisementFields) (*models.Advertisement, error) {
	if actor == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	if strings.TrimSpace(fields.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	ad := &models.Advertisement{OwnerID: actor.ID}
	fields.Apply(ad)
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdvertisementService) Get(ctx context.Context, id uint) (*models.Advertisement, error) {
	return s.adRepo.GetByID(ctx, id)
}

func (s *AdvertisementService) List(ctx context.Context, in ListInput) ([]models.Advertisement, error) {
	return s.adRepo.List(ctx, in.Limit, in.Offset)
}

// Search requires a non-blank query. The query itself is matched untrimmed.
func (s *AdvertisementService) Search(ctx context.Context, query string, in ListInput) ([]models.Advertisement, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Query parameter is required")
	}
	return s.adRepo.Search(ctx, query, in.Limit, in.Offset)
}

// ListByOwner fails with NotFound when the user does not exist.
func (s *AdvertisementService) ListByOwner(ctx context.Context, userID uint, in ListInput) ([]models.Advertisement, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.adRepo.ListByOwner(ctx, userID, in.Limit, in.Offset)
}

// Update replaces the editable fields of a listing the actor owns.
func (s *AdvertisementService) Update(ctx context.Context, actor *models.User, id uint, fields models.AdvertisementFields) (*models.Advertisement, error) {
	ad, err := s.authorizedAd(ctx, actor, id, "update")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fields.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}

	fields.Apply(ad)
	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete removes a listing the actor owns.
func (s *AdvertisementService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.authorizedAd(ctx, actor, id, "delete"); err != nil {
		return err
	}
	return s.adRepo.Delete(ctx, id)
}

// authorizedAd loads the listing and applies the ownership guard.
// A missing listing is reported before any permission check.
func (s *AdvertisementService) authorizedAd(ctx context.Context, actor *models.User, id uint, operation string) (*models.Advertisement, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeMutation(actor, ad); err != nil {
		observability.AuthorizationDenials.WithLabelValues(operation).Inc()
		middleware.Logger.WarnContext(ctx, "mutation refused",
			"operation", operation, "advertisement_id", id)
		return nil, &models.AppError{
			Code:    models.CodeForbidden,
			Message: "Not enough permissions to " + operation + " this advertisement",
			Err:     err,
		}
	}
	return ad, nil
}
