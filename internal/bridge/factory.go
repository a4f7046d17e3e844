package bridge

import (
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// NewPlacesClient creates the Google Maps client the search surface runs on.
// Rate limiting is applied at the client so a misbehaving surface cannot
// exceed the vendor quota even if rendered repeatedly.
func NewPlacesClient(apiKey string, rateLimit int) (*maps.Client, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required for the places search")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
	}

	if rateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(rateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return client, nil
}
