package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"ghaseel/internal/types"
)

// GeocodeService resolves street addresses to coordinates via the Google
// Geocoding API, so booking requests may carry an address instead of a point.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Locate geocodes an address, biased to Saudi Arabia where the service
// operates. Returns the first (best) match.
func (s *GeocodeService) Locate(ctx context.Context, address string) (types.Point, error) {
	r := &maps.GeocodingRequest{
		Address:  address,
		Region:   "SA",
		Language: "ar",
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return types.Point{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("no match for address")
	}

	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
