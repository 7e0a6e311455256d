package listings

import (
	"time"

	"scraplink-backend/internal/lifecycle"
	"scraplink-backend/internal/middleware"
	"scraplink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createListingRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	WasteType       string  `json:"waste_type"`
	EstimatedWeight float64 `json:"estimated_weight"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Address         string  `json:"address"`
	ImageURL        string  `json:"image_url"`
}

// CreateListing POST /api/v1/listings/create-listing
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body createListingRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	seller := middleware.CurrentUserID(c)
	listing, err := h.Service.CreateListing(c.Context(), seller, lifecycle.CreateInput{
		Title:           body.Title,
		Description:     body.Description,
		WasteType:       body.WasteType,
		EstimatedWeight: body.EstimatedWeight,
		Latitude:        body.Latitude,
		Longitude:       body.Longitude,
		Address:         body.Address,
		ImageURL:        body.ImageURL,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing)
}

// MyListings GET /api/v1/listings/my-listings — seller dashboard.
func (h *Handlers) MyListings(c *fiber.Ctx) error {
	views, err := h.Service.MyListings(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", views)
}

// MyPickups GET /api/v1/listings/my-pickups — collector dashboard.
func (h *Handlers) MyPickups(c *fiber.Ctx) error {
	views, err := h.Service.MyPickups(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pickups fetched successfully", views)
}

// GetListingByID GET /api/v1/listings/get-listing/:listing_id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest)
	}
	view, err := h.Service.GetListing(c.Context(), listingID, middleware.CurrentUserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", view)
}

type claimRequest struct {
	ListingID  string `json:"listing_id"`
	PickupTime string `json:"pickup_time"`
}

// ClaimListing POST /api/v1/listings/claim-listing
func (h *Handlers) ClaimListing(c *fiber.Ctx) error {
	var body claimRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id and pickup_time are required", fiber.StatusBadRequest)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest)
	}
	pickupTime, err := time.Parse(time.RFC3339, body.PickupTime)
	if err != nil {
		return response.Error(c, "pickup_time must be an RFC 3339 timestamp", fiber.StatusBadRequest)
	}
	listing, err := h.Service.ClaimListing(c.Context(), listingID, middleware.CurrentUserID(c), pickupTime)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pickup reserved successfully", listing)
}

type listingIDRequest struct {
	ListingID string `json:"listing_id"`
}

// DisputePickup POST /api/v1/listings/dispute-pickup
func (h *Handlers) DisputePickup(c *fiber.Ctx) error {
	listingID, ok := parseListingID(c)
	if !ok {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest)
	}
	listing, err := h.Service.DisputePickup(c.Context(), listingID, middleware.CurrentUserID(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pickup disputed, listing re-activated", listing)
}

type finalizeRequest struct {
	ListingID    string  `json:"listing_id"`
	UnitPrice    float64 `json:"unit_price"`
	ActualWeight float64 `json:"actual_weight"`
}

// FinalizePickup POST /api/v1/listings/finalize-pickup
func (h *Handlers) FinalizePickup(c *fiber.Ctx) error {
	var body finalizeRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id, unit_price and actual_weight are required", fiber.StatusBadRequest)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest)
	}
	listing, err := h.Service.FinalizePickup(c.Context(), listingID, middleware.CurrentUserID(c), body.UnitPrice, body.ActualWeight)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Collection finalized successfully", listing)
}

// WithdrawListing POST /api/v1/listings/withdraw-listing
func (h *Handlers) WithdrawListing(c *fiber.Ctx) error {
	listingID, ok := parseListingID(c)
	if !ok {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest)
	}
	if err := h.Service.WithdrawListing(c.Context(), listingID, middleware.CurrentUserID(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing withdrawn successfully", nil)
}

type editListingRequest struct {
	ListingID       string   `json:"listing_id"`
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	WasteType       *string  `json:"waste_type"`
	EstimatedWeight *float64 `json:"estimated_weight"`
	Address         *string  `json:"address"`
	ImageURL        *string  `json:"image_url"`
}

// EditListing PUT /api/v1/listings/edit-listing
func (h *Handlers) EditListing(c *fiber.Ctx) error {
	var body editListingRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest)
	}
	listing, err := h.Service.EditListing(c.Context(), listingID, middleware.CurrentUserID(c), lifecycle.EditInput{
		Title:           body.Title,
		Description:     body.Description,
		WasteType:       body.WasteType,
		EstimatedWeight: body.EstimatedWeight,
		Address:         body.Address,
		ImageURL:        body.ImageURL,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing updated successfully", listing)
}

func parseListingID(c *fiber.Ctx) (uuid.UUID, bool) {
	var body listingIDRequest
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(body.ListingID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
