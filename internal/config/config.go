package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the specialist finder.
// It includes the environment, monitoring port, Places API credentials,
// search parameters and the optional upstream classifier address.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the monitoring server.
// - APIKey: The API key for the third-party places search.
// - SearchRadiusKm: The fixed radius of the nearby search, in kilometers.
// - SearchKeyword: The keyword filter for the nearby search.
// - SearchTimeout: How long the host waits for the search surface to respond.
// - SearchRate: Allowed search requests per second against the places API.
// - ResultLimit: The maximum number of ranked providers to present.
type Config struct {
	Env            string        `yaml:"env"`            // Env is the current environment: local, dev, prod.
	Port           int           `yaml:"scout.port"`     // Port is the monitoring server port.
	APIKey         string        `yaml:"scout.api_key"`  // The API key for the places search.
	SearchRadiusKm float64       `yaml:"search.radius"`  // Fixed search radius in kilometers.
	SearchKeyword  string        `yaml:"search.keyword"` // Keyword filter for the nearby search.
	SearchTimeout  time.Duration `yaml:"search.timeout"` // Bound on waiting for a search result.
	SearchRate     int           `yaml:"search.rate"`    // Search requests per second.
	ResultLimit    int           `yaml:"result.limit"`   // Maximum number of ranked providers.
	ClassifierURL  string        `yaml:"classifier.url"` // Base URL of the upstream classifier, optional.
	GeoIPURL       string        `yaml:"geoip.url"`      // IP-geolocation endpoint for position fixes.
	StaticLat      string        `yaml:"position.lat"`   // Optional static position override (latitude).
	StaticLng      string        `yaml:"position.lng"`   // Optional static position override (longitude).
}

// MustLoad loads the configuration from the environment and returns a Config struct.
func MustLoad() *Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(setDefaultEnv("SCOUT_SEARCH_TIMEOUT", "20s"))
	if err != nil {
		panic("failed to parse search timeout from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("SCOUT_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	radius, err := strconv.ParseFloat(setDefaultEnv("SCOUT_SEARCH_RADIUS_KM", "15"), 64)
	if err != nil {
		panic("failed to parse search radius from configuration, must be a number")
	}

	limit, err := strconv.Atoi(setDefaultEnv("SCOUT_RESULT_LIMIT", "3"))
	if err != nil {
		panic("failed to parse result limit from configuration, must be an integer type")
	}

	searchRate, err := strconv.Atoi(setDefaultEnv("SCOUT_SEARCH_RATE", "5"))
	if err != nil {
		panic("failed to parse search rate from configuration, must be an integer type")
	}

	return &Config{
		Env:            setDefaultEnv("SCOUT_ENV", "production"),
		Port:           healthPort,
		APIKey:         os.Getenv("SCOUT_PROVIDER_KEY"),
		SearchRadiusKm: radius,
		SearchKeyword:  setDefaultEnv("SCOUT_SEARCH_KEYWORD", "dermatologist skin clinic"),
		SearchTimeout:  timeout,
		SearchRate:     searchRate,
		ResultLimit:    limit,
		ClassifierURL:  os.Getenv("SCOUT_CLASSIFIER_URL"),
		GeoIPURL:       setDefaultEnv("SCOUT_GEOIP_URL", "https://ipapi.co/json/"),
		StaticLat:      os.Getenv("SCOUT_POSITION_LAT"),
		StaticLng:      os.Getenv("SCOUT_POSITION_LNG"),
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
