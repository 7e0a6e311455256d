package store

import (
	"context"
	"errors"

	"scraplink-backend/internal/models"
	"scraplink-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormListingStore implements ListingStore on GORM. Seller and Collector are
// preloaded on every read so the visibility layer can project contact fields
// without a second query.
type GormListingStore struct {
	DB *gorm.DB
}

func (s *GormListingStore) Get(ctx context.Context, id uuid.UUID) (*models.ScrapListing, error) {
	var listing models.ScrapListing
	err := s.DB.WithContext(ctx).
		Preload("Seller").Preload("Collector").
		Where("listing_id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Listing not found")
		}
		return nil, apperrors.StoreUnavailable(err)
	}
	return &listing, nil
}

func (s *GormListingStore) FindByStatus(ctx context.Context, status string) ([]models.ScrapListing, error) {
	var listings []models.ScrapListing
	err := s.DB.WithContext(ctx).
		Preload("Seller").Preload("Collector").
		Where("status = ?", status).Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return listings, nil
}

func (s *GormListingStore) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.ScrapListing, error) {
	var listings []models.ScrapListing
	err := s.DB.WithContext(ctx).
		Preload("Seller").Preload("Collector").
		Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return listings, nil
}

func (s *GormListingStore) FindByCollector(ctx context.Context, collectorID uuid.UUID) ([]models.ScrapListing, error) {
	var listings []models.ScrapListing
	err := s.DB.WithContext(ctx).
		Preload("Seller").Preload("Collector").
		Where("collector_id = ?", collectorID).Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	return listings, nil
}

func (s *GormListingStore) Create(ctx context.Context, listing *models.ScrapListing) error {
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return apperrors.StoreUnavailable(err)
	}
	return nil
}

// ConditionalUpdate applies patch only while the persisted status equals
// expectedStatus, bumping the version marker in the same statement. Zero rows
// affected means either the row vanished (NotFound) or another caller changed
// the status first (Conflict); a re-read disambiguates.
func (s *GormListingStore) ConditionalUpdate(ctx context.Context, id uuid.UUID, expectedStatus string, patch map[string]interface{}) (*models.ScrapListing, error) {
	patch["version"] = gorm.Expr("version + 1")
	res := s.DB.WithContext(ctx).Model(&models.ScrapListing{}).
		Where("listing_id = ? AND status = ?", id, expectedStatus).
		Updates(patch)
	if res.Error != nil {
		return nil, apperrors.StoreUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.ScrapListing{}).
			Where("listing_id = ?", id).Count(&count).Error; err != nil {
			return nil, apperrors.StoreUnavailable(err)
		}
		if count == 0 {
			return nil, apperrors.NotFound("Listing not found")
		}
		return nil, apperrors.Conflict("Listing was modified by another request")
	}
	return s.Get(ctx, id)
}

// Delete removes the listing only while its status equals expectedStatus.
func (s *GormListingStore) Delete(ctx context.Context, id uuid.UUID, expectedStatus string) error {
	res := s.DB.WithContext(ctx).
		Where("listing_id = ? AND status = ?", id, expectedStatus).
		Delete(&models.ScrapListing{})
	if res.Error != nil {
		return apperrors.StoreUnavailable(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.ScrapListing{}).
			Where("listing_id = ?", id).Count(&count).Error; err != nil {
			return apperrors.StoreUnavailable(err)
		}
		if count == 0 {
			return apperrors.NotFound("Listing not found")
		}
		return apperrors.Conflict("Listing was modified by another request")
	}
	return nil
}
