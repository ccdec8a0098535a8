package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string // "dev", "staging", "prod"
	LogLevel    string
	LogFormat   string // "json", "text"
	LogDir      string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Connection pool tuning
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey string // API key for authentication

	// Proxy IPs whose X-Forwarded-For headers are trusted for client
	// IP extraction; empty means only direct remote addresses are used
	TrustedProxies []string

	// Resilient publisher settings; zero values fall back to bootstrap defaults
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	// Domain event audit log retention
	EventLogRetentionDays int

	// Community announcements; announcer stays disabled while the token is empty
	DiscordBotToken          string
	DiscordAnnounceChannelID string

	// Optional catalog override; empty means the compiled-in catalog is used
	CatalogConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "babygoats"),

		APIKey: getEnv("API_KEY", ""),

		TrustedProxies: splitAndTrim(getEnv("TRUSTED_PROXIES", "")),

		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", ""),

		DiscordBotToken:          getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordAnnounceChannelID: getEnv("DISCORD_ANNOUNCE_CHANNEL_ID", ""),

		CatalogConfigPath: getEnv("CATALOG_CONFIG_PATH", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxConnIdleTime, err = getEnvDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.EventMaxRetries, err = getEnvInt("EVENT_MAX_RETRIES", 0)
	if err != nil {
		return nil, err
	}

	cfg.EventRetryDelay, err = getEnvDuration("EVENT_RETRY_DELAY", 0)
	if err != nil {
		return nil, err
	}

	cfg.EventLogRetentionDays, err = getEnvInt("EVENTLOG_RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// splitAndTrim parses a comma-separated list, dropping empty entries
func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
