package utils

import "fmt"

// GeoJSONPoint is the only geometry type tour locations carry.
const GeoJSONPoint = "Point"

// IsValidCoordinates checks a GeoJSON [lng, lat] pair against the valid
// coordinate ranges.
func IsValidCoordinates(lng, lat float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateGeoPoint checks that a GeoJSON point is well formed: the Point
// type, a longitude/latitude pair, both in range.
func ValidateGeoPoint(pointType string, coordinates []float64) error {
	if pointType != GeoJSONPoint {
		return fmt.Errorf("geometry type must be %q, got %q", GeoJSONPoint, pointType)
	}
	if len(coordinates) != 2 {
		return fmt.Errorf("coordinates must be a [longitude, latitude] pair, got %d values", len(coordinates))
	}
	if !IsValidCoordinates(coordinates[0], coordinates[1]) {
		return fmt.Errorf("coordinates [%g, %g] are out of range", coordinates[0], coordinates[1])
	}
	return nil
}
