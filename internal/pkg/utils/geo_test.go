package utils

import (
	"math"
	"testing"

	"github.com/center-assignment/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.GeoPoint
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        domain.NewCenter(40.4168, -3.7038),
			b:        domain.NewCenter(40.4168, -3.7038),
			expected: 0,
			delta:    1e-9,
		},
		{
			name:     "one degree of latitude",
			a:        domain.NewCenter(0, 0),
			b:        domain.NewCenter(1, 0),
			expected: 111.19,
			delta:    0.01,
		},
		{
			name:     "madrid to barcelona",
			a:        domain.NewCenter(40.4168, -3.7038),
			b:        domain.NewCenter(41.3874, 2.1686),
			expected: 505,
			delta:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PointDistance(tt.a, tt.b), tt.delta)
			assert.InDelta(t, PointDistance(tt.a, tt.b), PointDistance(tt.b, tt.a), 1e-9)
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -181))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestValidatePoints(t *testing.T) {
	points := []domain.GeoPoint{
		domain.NewCenter(1, 1),
		domain.NewCenter(2, 2),
		domain.NewCenter(200, 2),
	}
	assert.Equal(t, 2, ValidatePoints(points))
	assert.Equal(t, -1, ValidatePoints(points[:2]))
	assert.Equal(t, -1, ValidatePoints(nil))
}
