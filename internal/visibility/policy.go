package visibility

import (
	"scraplink-backend/internal/models"

	"github.com/google/uuid"
)

// Contact is the slice of a user the other party of a reservation may see.
type Contact struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
}

// ListingView is a listing projection with contact fields attached per the
// viewer's relationship to the listing.
type ListingView struct {
	models.ScrapListing
	SellerContact    *Contact `json:"seller_contact,omitempty"`
	CollectorContact *Contact `json:"collector_contact,omitempty"`
}

// Project shapes a listing for a viewer. Contact exchange only happens between
// parties committed to a transaction:
//   - the seller sees the collector's contact once a collector is assigned
//   - the assigned collector sees the seller's contact
//   - everyone else sees listing fields only
func Project(l models.ScrapListing, viewer uuid.UUID) ListingView {
	view := ListingView{ScrapListing: l}
	if viewer == uuid.Nil {
		return view
	}
	if viewer == l.SellerID && l.CollectorID != nil {
		view.CollectorContact = contactOf(l.Collector)
	}
	if l.CollectorID != nil && viewer == *l.CollectorID {
		view.SellerContact = contactOf(l.Seller)
	}
	return view
}

// ProjectWithSellerContact is the map-feed exception: any browser of the
// shared map sees the seller's contact on an ACTIVE listing, since no
// commitment exists yet and initial contact must be possible.
func ProjectWithSellerContact(l models.ScrapListing) ListingView {
	return ListingView{ScrapListing: l, SellerContact: contactOf(l.Seller)}
}

func contactOf(u *models.User) *Contact {
	if u == nil {
		return nil
	}
	return &Contact{
		UserID:   u.UserID,
		FullName: u.FullName,
		Phone:    u.Phone,
		Email:    u.Email,
	}
}
