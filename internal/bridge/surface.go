package bridge

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nexderm/scout/internal/models"
	"googlemaps.github.io/maps"
)

// PlacesAPIClient is the slice of the Google Maps client the surface needs.
type PlacesAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// Surface is the embedded, independently-executing search side of the bridge.
// It is parameterized with the origin at construction time; the origin cannot
// change without rendering a new surface. Run executes one third-party nearby
// search and posts at most one PROVIDERS message on its outbound channel. On
// failure it posts nothing: the host cannot tell "still searching" from
// "will never respond" except through its own deadline.
type Surface struct {
	client   PlacesAPIClient // client executes the third-party search
	origin   models.Coordinate
	radiusKm float64
	keyword  string
	log      *slog.Logger
}

// NewSurface renders a surface bound to the given origin, search radius and
// keyword filter.
func NewSurface(
	client PlacesAPIClient,
	origin models.Coordinate,
	radiusKm float64,
	keyword string,
	log *slog.Logger,
) *Surface {
	return &Surface{
		client:   client,
		origin:   origin,
		radiusKm: radiusKm,
		keyword:  keyword,
		log:      log,
	}
}

// Run executes the nearby search and posts the result envelope to out.
// The channel is closed when the surface is done, whether or not it posted.
func (s *Surface) Run(ctx context.Context, out chan<- []byte) {
	defer close(out)

	const metersPerKm = 1000

	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: s.origin.Latitude, Lng: s.origin.Longitude},
		Radius:   uint(s.radiusKm * metersPerKm),
		Keyword:  s.keyword,
	}

	resp, err := s.client.NearbySearch(ctx, req)
	if err != nil {
		s.log.ErrorContext(ctx, "Nearby search failed, surface stays silent", "error", err)
		return
	}

	providers := make([]RawProvider, 0, len(resp.Results))
	for _, result := range resp.Results {
		providers = append(providers, toRawProvider(result))
	}

	payload, err := json.Marshal(Envelope{Type: MsgProviders, Data: mustMarshal(providers)})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal providers message", "error", err)
		return
	}

	select {
	case out <- payload:
		s.log.DebugContext(ctx, "Surface posted providers message", "count", len(providers))
	case <-ctx.Done():
		s.log.DebugContext(ctx, "Surface abandoned before posting", "error", ctx.Err())
	}
}

// toRawProvider maps one places result onto the message contract.
func toRawProvider(result maps.PlacesSearchResult) RawProvider {
	address := result.Vicinity
	if address == "" {
		address = result.FormattedAddress
	}
	if address == "" {
		address = "unavailable"
	}

	raw := RawProvider{Name: result.Name, Address: address}

	if result.Rating > 0 {
		rating := float64(result.Rating)
		raw.Rating = &rating
	}

	lat := result.Geometry.Location.Lat
	lng := result.Geometry.Location.Lng
	if lat != 0 || lng != 0 {
		raw.Lat = &lat
		raw.Lng = &lng
	}

	return raw
}

func mustMarshal(providers []RawProvider) json.RawMessage {
	data, err := json.Marshal(providers)
	if err != nil {
		// A slice of plain value types cannot fail to marshal.
		panic(err)
	}

	return data
}
