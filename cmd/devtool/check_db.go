package main

import (
	"fmt"
	"strings"
	"time"
)

// CheckDBCommand makes sure the compose-managed Postgres is up, starting it
// when necessary.
type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check if database is running and ready"
}

func (c *CheckDBCommand) Run(args []string) error {
	banner("Database")

	if err := runQuiet("docker", "compose", "version"); err != nil {
		return fmt.Errorf("docker compose not found; install Docker Compose first")
	}

	if dbServiceRunning() {
		ok("Database is already running")
		return nil
	}

	step("Starting database container...")
	if err := runLoud("docker", "compose", "up", "-d", "db"); err != nil {
		return fmt.Errorf("start database: %v", err)
	}

	if err := waitForPostgres(30); err != nil {
		_ = runLoud("docker", "compose", "logs", "db")
		return err
	}
	ok("Database is ready")
	return nil
}

func dbServiceRunning() bool {
	out, err := cmdOutput("docker", "compose", "ps", "db")
	if err != nil {
		return false
	}
	status := strings.ToLower(out)
	return strings.Contains(status, "up") || strings.Contains(status, "running")
}

// waitForPostgres polls pg_isready inside the container once a second until
// it accepts connections or the attempt budget runs out.
func waitForPostgres(maxAttempts int) error {
	dbUser := getEnv("DB_USER", "postgres")
	dbName := getEnv("DB_NAME", "babygoats")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if runQuiet("docker", "compose", "exec", "-T", "db", "pg_isready", "-U", dbUser, "-d", dbName) == nil {
			return nil
		}
		step("Waiting for database... (%d/%d)", attempt, maxAttempts)
		time.Sleep(time.Second)
	}
	return fmt.Errorf("database not ready after %d seconds", maxAttempts)
}
