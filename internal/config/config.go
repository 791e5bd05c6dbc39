package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// CGM Cloud data service
	DataAPIURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience. Retries apply to reads only; writes are never replayed.
	MaxRetries     int
	InitialBackoff time.Duration

	// Cache
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string

	// Tenant
	TenantKey string

	// JWT / Auth
	JWTSecret          string
	JWTAccessTTL       time.Duration
	AccessPasswordHash string // bcrypt hash of the shared back-office password
	AccessPassword     string // plaintext fallback for local development
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataAPIURL: getEnv("DATA_API_URL", "https://radio-cultura.cgmcloud.com.br"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		TenantKey: getEnv("TENANT_KEY", ""),

		JWTSecret:          getEnv("JWT_SECRET", "radio-cultura-dev-secret-change-me"),
		JWTAccessTTL:       getEnvDuration("JWT_ACCESS_TTL", 12*time.Hour),
		AccessPasswordHash: getEnv("ACCESS_PASSWORD_HASH", ""),
		AccessPassword:     getEnv("ACCESS_PASSWORD", ""),
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
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
