package models_test

import (
	"testing"

	"github.com/nexderm/scout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate(t *testing.T) {
	t.Run("accepts boundary values", func(t *testing.T) {
		for _, pair := range [][2]float64{
			{0, 0},
			{90, 180},
			{-90, -180},
			{50.45, 30.52},
		} {
			coord, err := models.NewCoordinate(pair[0], pair[1])
			require.NoError(t, err)
			assert.InDelta(t, pair[0], coord.Latitude, 1e-9)
			assert.InDelta(t, pair[1], coord.Longitude, 1e-9)
		}
	})

	t.Run("rejects out-of-range values", func(t *testing.T) {
		for _, pair := range [][2]float64{
			{90.1, 0},
			{-90.1, 0},
			{0, 180.1},
			{0, -180.1},
		} {
			_, err := models.NewCoordinate(pair[0], pair[1])
			require.ErrorIs(t, err, models.ErrInvalidCoordinate)
		}
	})
}
