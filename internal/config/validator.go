package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion pins the .env layout this build understands.
// Bumped whenever a required variable is added or renamed, so a stale .env
// fails loudly instead of booting half-configured.
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must all be present for the service to boot. Discord
// settings are deliberately absent: the announcer is optional.
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
}

// ValidateEnv verifies the schema version and the presence of every
// required variable, reporting all missing names in one error.
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set; update your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s; your .env file may be outdated", ExpectedEnvSchemaVersion, version)
	}

	var missing []string
	for _, name := range RequiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and additionally flags values
// that are technically valid but almost certainly wrong, like .env.example
// placeholders left in place.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_PASSWORD") == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD is still the example value; set a real password")
	}
	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY is still the example value; generate one with: openssl rand -hex 32")
	}
	if os.Getenv("DISCORD_BOT_TOKEN") != "" && os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID") == "" {
		warnings = append(warnings, "DISCORD_BOT_TOKEN is set but DISCORD_ANNOUNCE_CHANNEL_ID is not; announcements will stay disabled")
	}
	return warnings, nil
}
