package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nexderm/scout/internal/models"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// geoIPResponse represents the JSON response from an IP-geolocation endpoint.
type geoIPResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ErrGeoIPEmptyResponse is returned when the IP-geolocation endpoint responds
// without usable coordinates.
var ErrGeoIPEmptyResponse = errors.New("geoip endpoint returned no coordinates")

// GeoIPSource implements PositionSource using an IP-geolocation HTTP endpoint.
// The fix is coarse (city level), which is an acceptable accuracy hint for a
// 15 km nearby search.
type GeoIPSource struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Endpoint returning {"latitude": ..., "longitude": ...}
	log     *slog.Logger // Logger for logging operations
}

// NewGeoIPSource creates a position source backed by the given endpoint.
func NewGeoIPSource(baseURL string, log *slog.Logger) *GeoIPSource {
	const timeout = 10
	return &GeoIPSource{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: baseURL,
		log:     log,
	}
}

// NewGeoIPSourceWithClient creates a GeoIPSource with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewGeoIPSourceWithClient(client HTTPClient, baseURL string, log *slog.Logger) *GeoIPSource {
	return &GeoIPSource{client: client, baseURL: baseURL, log: log}
}

// Current fetches a position fix from the IP-geolocation endpoint.
func (s *GeoIPSource) Current(ctx context.Context) (models.Coordinate, error) {
	s.log.DebugContext(ctx, "Requesting position fix", "url", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to execute geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.log.ErrorContext(ctx, "GeoIP endpoint error", "status", resp.StatusCode, "body", string(body))
		return models.Coordinate{}, fmt.Errorf("geoip endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var result geoIPResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to decode geoip response: %w", err)
	}

	if result.Latitude == 0 && result.Longitude == 0 {
		return models.Coordinate{}, ErrGeoIPEmptyResponse
	}

	coord, err := models.NewCoordinate(result.Latitude, result.Longitude)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("geoip endpoint returned invalid coordinates: %w", err)
	}

	return coord, nil
}

// StaticSource implements PositionSource with a fixed coordinate.
// Used for headless runs and for environments without an IP-geolocation fix.
type StaticSource struct {
	coord models.Coordinate
}

// NewStaticSource creates a position source that always returns coord.
func NewStaticSource(coord models.Coordinate) *StaticSource {
	return &StaticSource{coord: coord}
}

// Current returns the configured coordinate.
func (s *StaticSource) Current(_ context.Context) (models.Coordinate, error) {
	return s.coord, nil
}
