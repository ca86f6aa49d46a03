package app

import (
	"os"
	"strconv"
	"time"

	"github.com/fedgate/fedgate/pkg/httpx"
)

type Config struct {
	Authority    string // Required unless TokenURL set: upstream provider issuer URL
	ClientID     string // Required: confidential client id registered at the provider
	ClientSecret string // Required: confidential client secret
	RedirectURI  string // Required: callback URI registered at the provider

	TokenURL         string        // Optional: token endpoint override, skips discovery
	Scopes           []string      // Optional: scope list for code redemption (default: built-in set)
	ExchangeDisabled bool          // Optional: reduced-trust mode, skip the upstream exchange
	ExchangeTimeout  time.Duration // Optional: upstream token endpoint timeout (default: 15s)

	DirectoryURL     string        // Optional: directory API base URL; empty disables enrichment network calls
	DirectoryTimeout time.Duration // Optional: directory request timeout (default: 10s)

	IssuerURL     string        // Required: local token issuer base URL
	IssuerTimeout time.Duration // Optional: issuer request timeout (default: 10s)

	SuccessRedirect string // Optional: browser redirect after a completed login (default: /)
	ErrorRedirect   string // Optional: browser redirect after a failed login (default: /error)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./fedgate.db)
	DevReset             bool          // Optional: drop and rebuild the database before seeding. Refused in prod.
	PepperFile           string        // Optional: path to pepper file for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired grant cleanup interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Authority:    os.Getenv("FEDGATE_AUTHORITY"),
		ClientID:     os.Getenv("FEDGATE_CLIENT_ID"),
		ClientSecret: os.Getenv("FEDGATE_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("FEDGATE_REDIRECT_URI"),

		TokenURL:         os.Getenv("FEDGATE_TOKEN_URL"),
		Scopes:           httpx.ParseSpaceDelimitedFields(os.Getenv("FEDGATE_SCOPES")),
		ExchangeDisabled: getEnvBoolOrDefault("FEDGATE_EXCHANGE_DISABLED", false),
		ExchangeTimeout:  getEnvDurationOrDefault("FEDGATE_EXCHANGE_TIMEOUT", 15*time.Second),

		DirectoryURL:     os.Getenv("FEDGATE_DIRECTORY_URL"),
		DirectoryTimeout: getEnvDurationOrDefault("FEDGATE_DIRECTORY_TIMEOUT", 10*time.Second),

		IssuerURL:     os.Getenv("FEDGATE_ISSUER_URL"),
		IssuerTimeout: getEnvDurationOrDefault("FEDGATE_ISSUER_TIMEOUT", 10*time.Second),

		SuccessRedirect: os.Getenv("FEDGATE_SUCCESS_REDIRECT"),
		ErrorRedirect:   os.Getenv("FEDGATE_ERROR_REDIRECT"),

		DatabaseFile:         getEnvOrDefault("FEDGATE_DATABASE_FILE", "fedgate.db"),
		DevReset:             getEnvBoolOrDefault("FEDGATE_DEV_RESET", false),
		PepperFile:           getEnvOrDefault("FEDGATE_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
