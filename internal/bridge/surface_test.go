package bridge_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/nexderm/scout/internal/bridge"
	"github.com/nexderm/scout/internal/models"
	"github.com/nexderm/scout/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestSurfaceRun(t *testing.T) {
	origin := models.Coordinate{Latitude: 50.45, Longitude: 30.52}
	ctx := context.Background()

	t.Run("posts exactly one providers message on success", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		expectedReq := &maps.NearbySearchRequest{
			Location: &maps.LatLng{Lat: 50.45, Lng: 30.52},
			Radius:   15000,
			Keyword:  "dermatologist skin clinic",
		}
		response := maps.PlacesSearchResponse{
			Results: []maps.PlacesSearchResult{
				{
					Name:     "Derma One",
					Vicinity: "1 Main St",
					Rating:   4.5,
					Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 50.5, Lng: 30.6}},
				},
			},
		}
		mockClient.On("NearbySearch", ctx, expectedReq).Return(response, nil).Once()

		surface := bridge.NewSurface(mockClient, origin, 15, "dermatologist skin clinic", slog.Default())
		out := make(chan []byte, 1)
		surface.Run(ctx, out)

		raw, ok := <-out
		require.True(t, ok)

		var env bridge.Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, bridge.MsgProviders, env.Type)

		var providers []bridge.RawProvider
		require.NoError(t, json.Unmarshal(env.Data, &providers))
		require.Len(t, providers, 1)
		assert.Equal(t, "Derma One", providers[0].Name)
		assert.Equal(t, "1 Main St", providers[0].Address)
		require.NotNil(t, providers[0].Rating)
		assert.InEpsilon(t, 4.5, *providers[0].Rating, 0.001)
		require.NotNil(t, providers[0].Lat)
		assert.InEpsilon(t, 50.5, *providers[0].Lat, 0.001)

		// The channel is closed after the one message.
		_, ok = <-out
		assert.False(t, ok)
	})

	t.Run("stays silent on API failure", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		mockClient.On("NearbySearch", ctx, mock.Anything).Return(maps.PlacesSearchResponse{}, assert.AnError).Once()

		surface := bridge.NewSurface(mockClient, origin, 15, "dermatologist skin clinic", slog.Default())
		out := make(chan []byte, 1)
		surface.Run(ctx, out)

		_, ok := <-out
		assert.False(t, ok, "a failing surface must post nothing")
	})

	t.Run("fills placeholder address and omits zero rating", func(t *testing.T) {
		mockClient := mocks.NewPlacesAPIClient(t)
		response := maps.PlacesSearchResponse{
			Results: []maps.PlacesSearchResult{
				{
					Name:     "No Details Clinic",
					Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 50.4, Lng: 30.5}},
				},
			},
		}
		mockClient.On("NearbySearch", ctx, mock.Anything).Return(response, nil).Once()

		surface := bridge.NewSurface(mockClient, origin, 15, "dermatologist skin clinic", slog.Default())
		out := make(chan []byte, 1)
		surface.Run(ctx, out)

		raw := <-out
		var env bridge.Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		var providers []bridge.RawProvider
		require.NoError(t, json.Unmarshal(env.Data, &providers))

		require.Len(t, providers, 1)
		assert.Equal(t, "unavailable", providers[0].Address)
		assert.Nil(t, providers[0].Rating)
	})
}
