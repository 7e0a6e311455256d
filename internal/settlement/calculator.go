package settlement

import (
	"math"

	"scraplink-backend/internal/pkg/apperrors"
)

// ComputeTotal returns unitPrice * actualWeight. Both inputs must be finite
// and strictly positive. No currency rounding is applied; presentation layers
// format to two decimals.
func ComputeTotal(unitPrice, actualWeight float64) (float64, error) {
	if !isPositiveFinite(unitPrice) {
		return 0, apperrors.Validation("Invalid unit price")
	}
	if !isPositiveFinite(actualWeight) {
		return 0, apperrors.Validation("Invalid actual weight")
	}
	return unitPrice * actualWeight, nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
