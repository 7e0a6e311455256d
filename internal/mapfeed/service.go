package mapfeed

import (
	"context"

	"scraplink-backend/internal/models"
	"scraplink-backend/internal/store"
	"scraplink-backend/internal/visibility"
)

// Service serves the shared map: every ACTIVE listing, geographically
// unbounded. Spatial windowing and clustering are the client's job.
type Service struct {
	Store store.ListingStore
}

// ListActive returns all ACTIVE listings, most recently created first, each
// annotated with the seller's contact so a prospective collector can make
// initial contact before any commitment exists.
func (s *Service) ListActive(ctx context.Context) ([]visibility.ListingView, error) {
	listings, err := s.Store.FindByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, err
	}
	views := make([]visibility.ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, visibility.ProjectWithSellerContact(l))
	}
	return views, nil
}
