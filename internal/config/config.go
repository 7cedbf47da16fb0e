package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Backend  BackendConfig
	Maps     MapsConfig
	Wizard   WizardConfig
	Catalog  CatalogConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration for the booking journal.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// BackendConfig points at the marketplace REST API.
type BackendConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// MapsConfig holds Google Maps credentials and result bias.
// An empty APIKey disables geocoding.
type MapsConfig struct {
	APIKey   string
	Region   string
	Language string
}

// WizardConfig tunes the booking wizard sessions.
type WizardConfig struct {
	SearchPageSize  int
	DebounceDelay   time.Duration
	SessionIdleTTL  time.Duration
	JanitorSchedule string
	ConfirmLockTTL  time.Duration
	MaxNotices      int
}

// CatalogConfig controls reference-data caching.
type CatalogConfig struct {
	CacheTTL time.Duration
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string
	Format string
}

// CORSConfig lists the dashboard origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "booking_desk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "booking-desk"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Backend: BackendConfig{
			BaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:9000/api/v1"),
			APIToken: getEnv("BACKEND_API_TOKEN", ""),
			Timeout:  getDurationEnv("BACKEND_TIMEOUT", 15*time.Second),
		},
		Maps: MapsConfig{
			APIKey:   getEnv("MAPS_API_KEY", ""),
			Region:   getEnv("MAPS_REGION", "ng"),
			Language: getEnv("MAPS_LANGUAGE", "en"),
		},
		Wizard: WizardConfig{
			SearchPageSize:  getIntEnv("WIZARD_PAGE_SIZE", 12),
			DebounceDelay:   getDurationEnv("WIZARD_DEBOUNCE", 300*time.Millisecond),
			SessionIdleTTL:  getDurationEnv("WIZARD_SESSION_IDLE_TTL", 2*time.Hour),
			JanitorSchedule: getEnv("WIZARD_JANITOR_SCHEDULE", "@every 5m"),
			ConfirmLockTTL:  getDurationEnv("WIZARD_CONFIRM_LOCK_TTL", 30*time.Second),
			MaxNotices:      getIntEnv("WIZARD_MAX_NOTICES", 20),
		},
		Catalog: CatalogConfig{
			CacheTTL: getDurationEnv("CATALOG_CACHE_TTL", 10*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
