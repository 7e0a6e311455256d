package store

import (
	"context"

	"scraplink-backend/internal/models"

	"github.com/google/uuid"
)

// ListingStore is the persistence boundary for listings. It is injected into
// the services that need it; nothing reaches for a global DB handle.
//
// ConditionalUpdate and Delete are compare-and-swap primitives: they only
// apply when the persisted status still matches expectedStatus, so every
// transition gets the same optimistic-concurrency discipline as claim.
type ListingStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ScrapListing, error)
	FindByStatus(ctx context.Context, status string) ([]models.ScrapListing, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.ScrapListing, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID) ([]models.ScrapListing, error)
	Create(ctx context.Context, listing *models.ScrapListing) error
	ConditionalUpdate(ctx context.Context, id uuid.UUID, expectedStatus string, patch map[string]interface{}) (*models.ScrapListing, error)
	Delete(ctx context.Context, id uuid.UUID, expectedStatus string) error
}
