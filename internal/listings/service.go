package listings

import (
	"context"
	"time"

	"scraplink-backend/internal/lifecycle"
	"scraplink-backend/internal/models"
	"scraplink-backend/internal/store"
	"scraplink-backend/internal/visibility"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service coordinates listing transitions against the store. Claim is the one
// operation where concurrent callers race; it goes through the store's
// compare-and-swap and reports a conflict without retrying. The other
// transitions use the same conditional writes for defense in depth.
type Service struct {
	Store store.ListingStore
}

func (s *Service) CreateListing(ctx context.Context, seller uuid.UUID, in lifecycle.CreateInput) (*models.ScrapListing, error) {
	listing, err := lifecycle.Create(seller, in)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Create(ctx, &listing); err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", listing.ListingID.String()).Str("waste_type", listing.WasteType).Msg("listing created")
	return &listing, nil
}

// ClaimListing reads the current listing, applies the claim transition to the
// snapshot and writes back conditionally on status still being ACTIVE. If the
// condition fails another collector won the race (or the seller withdrew) and
// the caller gets a conflict; no retry happens here.
func (s *Service) ClaimListing(ctx context.Context, id uuid.UUID, collector uuid.UUID, pickupTime time.Time) (*models.ScrapListing, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Claim(*current, collector, pickupTime)
	if err != nil {
		return nil, err
	}
	updated, err := s.Store.ConditionalUpdate(ctx, id, models.StatusActive, map[string]interface{}{
		"status":       next.Status,
		"collector_id": next.CollectorID,
		"pickup_time":  next.PickupTime,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", id.String()).Str("collector_id", collector.String()).Msg("listing claimed")
	return updated, nil
}

// DisputePickup reverts a reservation to ACTIVE, clearing the collector.
func (s *Service) DisputePickup(ctx context.Context, id uuid.UUID, actor uuid.UUID) (*models.ScrapListing, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Dispute(*current, actor)
	if err != nil {
		return nil, err
	}
	updated, err := s.Store.ConditionalUpdate(ctx, id, models.StatusReserved, map[string]interface{}{
		"status":       next.Status,
		"collector_id": nil,
		"pickup_time":  nil,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", id.String()).Msg("pickup disputed, listing re-activated")
	return updated, nil
}

// FinalizePickup records the settlement and closes the listing.
func (s *Service) FinalizePickup(ctx context.Context, id uuid.UUID, actor uuid.UUID, unitPrice, actualWeight float64) (*models.ScrapListing, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Finalize(*current, actor, unitPrice, actualWeight, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	updated, err := s.Store.ConditionalUpdate(ctx, id, models.StatusReserved, map[string]interface{}{
		"status":        next.Status,
		"completed_at":  next.CompletedAt,
		"unit_price":    next.UnitPrice,
		"actual_weight": next.ActualWeight,
		"total_amount":  next.TotalAmount,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", id.String()).Float64("total_amount", *next.TotalAmount).Msg("pickup finalized")
	return updated, nil
}

// WithdrawListing permanently removes the seller's own ACTIVE listing.
func (s *Service) WithdrawListing(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := lifecycle.Withdraw(*current, actor); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id, models.StatusActive); err != nil {
		return err
	}
	log.Info().Str("listing_id", id.String()).Msg("listing withdrawn")
	return nil
}

// EditListing applies seller edits to an ACTIVE listing.
func (s *Service) EditListing(ctx context.Context, id uuid.UUID, actor uuid.UUID, in lifecycle.EditInput) (*models.ScrapListing, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := lifecycle.Edit(*current, actor, in)
	if err != nil {
		return nil, err
	}
	return s.Store.ConditionalUpdate(ctx, id, models.StatusActive, map[string]interface{}{
		"title":            next.Title,
		"description":      next.Description,
		"waste_type":       next.WasteType,
		"estimated_weight": next.EstimatedWeight,
		"address":          next.Address,
		"image_url":        next.ImageURL,
	})
}

// GetListing returns the listing shaped for the viewer.
func (s *Service) GetListing(ctx context.Context, id uuid.UUID, viewer uuid.UUID) (*visibility.ListingView, error) {
	listing, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := visibility.Project(*listing, viewer)
	return &view, nil
}

// MyListings is the seller dashboard: the seller's own listings, newest first,
// with the collector's contact attached where one is assigned.
func (s *Service) MyListings(ctx context.Context, seller uuid.UUID) ([]visibility.ListingView, error) {
	listings, err := s.Store.FindBySeller(ctx, seller)
	if err != nil {
		return nil, err
	}
	views := make([]visibility.ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, visibility.Project(l, seller))
	}
	return views, nil
}

// MyPickups is the collector dashboard: listings the collector has claimed,
// newest first, each with the seller's contact.
func (s *Service) MyPickups(ctx context.Context, collector uuid.UUID) ([]visibility.ListingView, error) {
	listings, err := s.Store.FindByCollector(ctx, collector)
	if err != nil {
		return nil, err
	}
	views := make([]visibility.ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, visibility.Project(l, collector))
	}
	return views, nil
}
