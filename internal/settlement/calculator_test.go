package settlement

import (
	"math"
	"testing"

	"scraplink-backend/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	total, err := ComputeTotal(150, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 525.0, total)

	total, err = ComputeTotal(40, 4.8)
	require.NoError(t, err)
	assert.InDelta(t, 192, total, 1e-9)
}

func TestComputeTotal_Rejects(t *testing.T) {
	cases := []struct {
		name                    string
		unitPrice, actualWeight float64
	}{
		{"zero price", 0, 10},
		{"negative price", -5, 10},
		{"zero weight", 10, 0},
		{"negative weight", 10, -1},
		{"nan price", math.NaN(), 10},
		{"inf weight", 10, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTotal(tc.unitPrice, tc.actualWeight)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}
