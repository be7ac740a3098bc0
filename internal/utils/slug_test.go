package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"The Forest Hiker", "the-forest-hiker"},
		{"  The Sea Explorer  ", "the-sea-explorer"},
		{"Tour #1 (Deluxe!)", "tour-1-deluxe"},
		{"ALL---CAPS", "all-caps"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}

func TestValidateGeoPoint(t *testing.T) {
	assert.NoError(t, ValidateGeoPoint("Point", []float64{-80.185942, 25.774772}))

	assert.Error(t, ValidateGeoPoint("Polygon", []float64{0, 0}))
	assert.Error(t, ValidateGeoPoint("Point", []float64{0}))
	assert.Error(t, ValidateGeoPoint("Point", []float64{-200, 25}))
	assert.Error(t, ValidateGeoPoint("Point", []float64{-80, 95}))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jonas@example.com", NormalizeEmail("  Jonas@Example.COM "))
}
