package config_test

import (
	"testing"
	"time"

	"github.com/nexderm/scout/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("SCOUT_ENV", "local")
	t.Setenv("SCOUT_SEARCH_TIMEOUT", "30s")
	t.Setenv("SCOUT_PROVIDER_KEY", "testAPIKey")
	t.Setenv("SCOUT_SEARCH_RADIUS_KM", "10")
	t.Setenv("SCOUT_RESULT_LIMIT", "5")
	t.Setenv("SCOUT_CLASSIFIER_URL", "http://localhost:8000/api/v1")
	t.Setenv("SCOUT_POSITION_LAT", "50.45")
	t.Setenv("SCOUT_POSITION_LNG", "30.52")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.InEpsilon(t, 10.0, cfg.SearchRadiusKm, 0.0001)
	assert.Equal(t, "dermatologist skin clinic", cfg.SearchKeyword)
	assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 5, cfg.SearchRate)
	assert.Equal(t, 5, cfg.ResultLimit)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.ClassifierURL)
	assert.Equal(t, "50.45", cfg.StaticLat)
	assert.Equal(t, "30.52", cfg.StaticLng)
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("SCOUT_SEARCH_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse search timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("SCOUT_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RadiusError(t *testing.T) {
	t.Setenv("SCOUT_SEARCH_RADIUS_KM", "error_value")

	assert.PanicsWithValue(t, "failed to parse search radius from configuration, must be a number", func() {
		config.MustLoad()
	})
}

func TestMustLoad_LimitError(t *testing.T) {
	t.Setenv("SCOUT_RESULT_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse result limit from configuration, must be an integer type", func() {
		config.MustLoad()
	})
}
