package mapfeed

import (
	"scraplink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// ActiveListings GET /api/v1/map/active-listings — public, no auth.
func (h *Handlers) ActiveListings(c *fiber.Ctx) error {
	views, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Active listings fetched", views)
}
