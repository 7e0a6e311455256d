package lifecycle

import (
	"strings"
	"time"

	"scraplink-backend/internal/models"
	"scraplink-backend/internal/pkg/apperrors"
	"scraplink-backend/internal/pkg/validation"
	"scraplink-backend/internal/settlement"

	"github.com/google/uuid"
)

// Transition names, used for authorization rules and error messages.
const (
	TransitionClaim    = "claim"
	TransitionDispute  = "dispute"
	TransitionFinalize = "finalize"
	TransitionWithdraw = "withdraw"
	TransitionEdit     = "edit"
)

// rule is an authorization predicate: the status a transition is legal from
// and the relationship the actor must have to the listing. Evaluated once per
// transition instead of re-derived at every call site.
type rule struct {
	from    string
	allowed func(l models.ScrapListing, actor uuid.UUID) (bool, string)
}

var rules = map[string]rule{
	TransitionClaim: {from: models.StatusActive, allowed: func(l models.ScrapListing, actor uuid.UUID) (bool, string) {
		if actor == l.SellerID {
			return false, "Sellers cannot claim their own listing"
		}
		return true, ""
	}},
	TransitionDispute:  {from: models.StatusReserved, allowed: sellerOnly},
	TransitionWithdraw: {from: models.StatusActive, allowed: sellerOnly},
	TransitionEdit:     {from: models.StatusActive, allowed: sellerOnly},
	TransitionFinalize: {from: models.StatusReserved, allowed: func(l models.ScrapListing, actor uuid.UUID) (bool, string) {
		if l.CollectorID == nil || actor != *l.CollectorID {
			return false, "Only the assigned collector can finalize the pickup"
		}
		return true, ""
	}},
}

func sellerOnly(l models.ScrapListing, actor uuid.UUID) (bool, string) {
	if actor != l.SellerID {
		return false, "Only the listing's seller may perform this action"
	}
	return true, ""
}

// Authorize checks that the transition is legal from the listing's current
// status and that the actor holds the role it requires.
func Authorize(transition string, l models.ScrapListing, actor uuid.UUID) error {
	if actor == uuid.Nil {
		return apperrors.Authorization("Unauthorized")
	}
	r, ok := rules[transition]
	if !ok {
		return apperrors.Validation("Unknown transition: %s", transition)
	}
	if l.Status != r.from {
		return apperrors.InvalidState(l.Status, transition)
	}
	if allowed, reason := r.allowed(l, actor); !allowed {
		return apperrors.Authorization(reason)
	}
	return nil
}

// CreateInput carries the seller-supplied fields of a new listing.
type CreateInput struct {
	Title           string
	Description     string
	WasteType       string
	EstimatedWeight float64
	Latitude        float64
	Longitude       float64
	Address         string
	ImageURL        string
}

// Create validates the input and returns a new ACTIVE listing snapshot.
// It performs no I/O; the caller persists the result.
func Create(seller uuid.UUID, in CreateInput) (models.ScrapListing, error) {
	var zero models.ScrapListing
	if seller == uuid.Nil {
		return zero, apperrors.Authorization("Unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return zero, apperrors.Validation("Title is required")
	}
	if !models.WasteTypes[in.WasteType] {
		return zero, apperrors.Validation("Unrecognized waste type: %s", in.WasteType)
	}
	if in.EstimatedWeight <= 0 {
		return zero, apperrors.Validation("Estimated weight must be positive")
	}
	if !validation.IsValidLatitude(in.Latitude) || !validation.IsValidLongitude(in.Longitude) {
		return zero, apperrors.Validation("Latitude/longitude out of range")
	}
	if strings.TrimSpace(in.Address) == "" {
		return zero, apperrors.Validation("Address is required")
	}
	if !validation.IsPlausibleImageURL(in.ImageURL) {
		return zero, apperrors.Validation("Image URL must be an HTTP(S) URL or internal path")
	}
	return models.ScrapListing{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		WasteType:       in.WasteType,
		EstimatedWeight: in.EstimatedWeight,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		Address:         in.Address,
		ImageURL:        in.ImageURL,
		Status:          models.StatusActive,
		SellerID:        seller,
	}, nil
}

// Claim reserves the listing for the collector at the chosen pickup time.
// The pickup time is accepted as-is; minimum lead time is a UI concern and
// the engine never clamps it.
func Claim(l models.ScrapListing, collector uuid.UUID, pickupTime time.Time) (models.ScrapListing, error) {
	if err := Authorize(TransitionClaim, l, collector); err != nil {
		return l, err
	}
	if pickupTime.IsZero() {
		return l, apperrors.Validation("Pickup time is required")
	}
	l.Status = models.StatusReserved
	l.CollectorID = &collector
	l.PickupTime = &pickupTime
	return l, nil
}

// Dispute reverts a reservation back to ACTIVE, revoking the collector.
// This is the sole recovery path after a no-show; there is no automatic
// expiry of stale reservations.
func Dispute(l models.ScrapListing, actor uuid.UUID) (models.ScrapListing, error) {
	if err := Authorize(TransitionDispute, l, actor); err != nil {
		return l, err
	}
	l.Status = models.StatusActive
	l.CollectorID = nil
	l.PickupTime = nil
	return l, nil
}

// Finalize records the actual weight and unit price, computes the settlement
// total and closes the listing. COLLECTED is terminal.
func Finalize(l models.ScrapListing, actor uuid.UUID, unitPrice, actualWeight float64, now time.Time) (models.ScrapListing, error) {
	if err := Authorize(TransitionFinalize, l, actor); err != nil {
		return l, err
	}
	total, err := settlement.ComputeTotal(unitPrice, actualWeight)
	if err != nil {
		return l, err
	}
	l.Status = models.StatusCollected
	l.CompletedAt = &now
	l.UnitPrice = &unitPrice
	l.ActualWeight = &actualWeight
	l.TotalAmount = &total
	return l, nil
}

// Withdraw checks that the actor may permanently remove the listing.
// Deletion itself is the store's job.
func Withdraw(l models.ScrapListing, actor uuid.UUID) error {
	return Authorize(TransitionWithdraw, l, actor)
}

// EditInput carries the editable fields of an ACTIVE listing. Nil pointers
// leave the current value untouched.
type EditInput struct {
	Title           *string
	Description     *string
	WasteType       *string
	EstimatedWeight *float64
	Address         *string
	ImageURL        *string
}

// Edit applies seller edits to an ACTIVE listing snapshot.
func Edit(l models.ScrapListing, actor uuid.UUID, in EditInput) (models.ScrapListing, error) {
	if err := Authorize(TransitionEdit, l, actor); err != nil {
		return l, err
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return l, apperrors.Validation("Title is required")
		}
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.WasteType != nil {
		if !models.WasteTypes[*in.WasteType] {
			return l, apperrors.Validation("Unrecognized waste type: %s", *in.WasteType)
		}
		l.WasteType = *in.WasteType
	}
	if in.EstimatedWeight != nil {
		if *in.EstimatedWeight <= 0 {
			return l, apperrors.Validation("Estimated weight must be positive")
		}
		l.EstimatedWeight = *in.EstimatedWeight
	}
	if in.Address != nil {
		if strings.TrimSpace(*in.Address) == "" {
			return l, apperrors.Validation("Address is required")
		}
		l.Address = *in.Address
	}
	if in.ImageURL != nil {
		if !validation.IsPlausibleImageURL(*in.ImageURL) {
			return l, apperrors.Validation("Image URL must be an HTTP(S) URL or internal path")
		}
		l.ImageURL = *in.ImageURL
	}
	return l, nil
}
