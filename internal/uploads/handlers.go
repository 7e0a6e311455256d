package uploads

import (
	"scraplink-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const listingPhotoBucket = "listing-photos"

// Handlers bundles upload handlers with the service.
type Handlers struct {
	Service *Service
}

type uploadRequest struct {
	FileName string `json:"file_name"`
}

// UploadListingPhoto POST /api/v1/uploads/listing-photo
func (h *Handlers) UploadListingPhoto(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil || req.FileName == "" {
		return response.Error(c, "file_name is required", fiber.StatusBadRequest)
	}

	res, err := h.Service.GetSignedUploadURL(c.Context(), listingPhotoBucket, req.FileName)
	if err != nil {
		log.Error().Err(err).Str("bucket", listingPhotoBucket).Msg("upload: failed to generate signed URL")
		return response.Error(c, "Failed to generate upload URL", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Upload URL generated", res)
}
