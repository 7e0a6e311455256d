package response

import (
	"errors"

	"scraplink-backend/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standardized success JSON shape.
type SuccessBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorBody is the standardized error JSON shape.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail is the nested error object.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

const statusSuccess = "success"
const statusError = "error"

// Success sends a 200 OK response with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(SuccessBody{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// SuccessCreated sends a 201 Created response with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessBody{
		Status:  statusSuccess,
		Message: message,
		Data:    data,
	})
}

// Error sends a response with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
		},
	})
}

// Unauthorized sends 401 with the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// FromError maps a core error to its HTTP status and sends the standard
// error body. Unknown errors become 500 without leaking internals.
func FromError(c *fiber.Ctx, err error) error {
	return Error(c, messageFor(err), StatusFor(err))
}

// StatusFor resolves the HTTP status code for a core error.
func StatusFor(err error) int {
	var (
		validation  *apperrors.ValidationError
		authz       *apperrors.AuthorizationError
		invalid     *apperrors.InvalidStateError
		conflict    *apperrors.ConflictError
		notFound    *apperrors.NotFoundError
		unavailable *apperrors.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &authz):
		return fiber.StatusForbidden
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.As(err, &unavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error) string {
	if StatusFor(err) == fiber.StatusInternalServerError {
		return "Internal Server Error"
	}
	return err.Error()
}
