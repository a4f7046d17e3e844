package location_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/nexderm/scout/internal/location"
	"github.com/nexderm/scout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestGeoIPSource_Current(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("successful fix", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "https://ipapi.co/json/", req.URL.String())

				responseBody := `{"latitude":50.45,"longitude":30.52,"city":"Kyiv"}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := location.NewGeoIPSourceWithClient(mockClient, "https://ipapi.co/json/", logger)
		coord, err := source.Current(ctx)

		require.NoError(t, err)
		assert.InEpsilon(t, 50.45, coord.Latitude, 0.0001)
		assert.InEpsilon(t, 30.52, coord.Longitude, 0.0001)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":"rate limited"}`)),
				}, nil
			},
		}

		source := location.NewGeoIPSourceWithClient(mockClient, "https://ipapi.co/json/", logger)
		_, err := source.Current(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "geoip endpoint returned status 429")
	})

	t.Run("missing coordinates in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"city":"Nowhere"}`)),
				}, nil
			},
		}

		source := location.NewGeoIPSourceWithClient(mockClient, "https://ipapi.co/json/", logger)
		_, err := source.Current(ctx)

		require.ErrorIs(t, err, location.ErrGeoIPEmptyResponse)
	})

	t.Run("out-of-range coordinates are rejected", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"latitude":123.0,"longitude":500.0}`)),
				}, nil
			},
		}

		source := location.NewGeoIPSourceWithClient(mockClient, "https://ipapi.co/json/", logger)
		_, err := source.Current(ctx)

		require.ErrorIs(t, err, models.ErrInvalidCoordinate)
	})

	t.Run("transport failure", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		source := location.NewGeoIPSourceWithClient(mockClient, "https://ipapi.co/json/", logger)
		_, err := source.Current(ctx)

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestStaticSource_Current(t *testing.T) {
	coord := models.Coordinate{Latitude: 1.5, Longitude: -2.5}
	source := location.NewStaticSource(coord)

	got, err := source.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, coord, got)
}
