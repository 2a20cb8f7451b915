package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Default location used when an album contains no geolocated photo at all
	DefaultLatitude  float64
	DefaultLongitude float64

	// ProximityKm is the distance under which a photo inherits its day's
	// resolved place name instead of triggering a lookup of its own. The two
	// historical implementations disagreed (2 km vs 5 km), so it is a
	// configuration parameter rather than a constant.
	ProximityKm float64

	// MaxResolvesPerDay caps individual photo geocode lookups within one day
	// group, bounding cost on days with many disparate locations
	MaxResolvesPerDay int

	GeocodeBaseURL     string
	GeocodeUserAgent   string
	GeocodeTimeout     time.Duration
	GeocodeConcurrency int

	// ExtractConcurrency bounds the EXIF extraction worker pool on ingestion
	ExtractConcurrency int
}

// Load reads the configuration from the environment, with .env support
func Load() *Config {
	// Missing .env is fine; the environment may be set directly
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/phototrip.db"),
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),

		DefaultLatitude:  getEnvFloat("DEFAULT_LATITUDE", 48.8566),
		DefaultLongitude: getEnvFloat("DEFAULT_LONGITUDE", 2.3522),

		ProximityKm:       getEnvFloat("PROXIMITY_KM", 2.0),
		MaxResolvesPerDay: getEnvInt("MAX_RESOLVES_PER_DAY", 3),

		GeocodeBaseURL:     getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeUserAgent:   getEnv("GEOCODE_USER_AGENT", "phototrip-backend/1.0"),
		GeocodeTimeout:     time.Duration(getEnvInt("GEOCODE_TIMEOUT_SECONDS", 6)) * time.Second,
		GeocodeConcurrency: getEnvInt("GEOCODE_CONCURRENCY", 5),

		ExtractConcurrency: getEnvInt("EXTRACT_CONCURRENCY", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
