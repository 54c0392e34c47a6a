package domain

import "context"

// GeocodingResult contains the place context returned by a geocoding provider.
type GeocodingResult struct {
	Country    string
	Region     string
	PlaceName  string
	Confidence float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place names for the fallback heuristic.
type Geocoder interface {
	// ReverseGeocode converts coordinates to country and region names.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
