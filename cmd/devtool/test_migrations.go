package main

import (
	"fmt"
	"os"
	"strings"
)

type TestMigrationsCommand struct{}

func (c *TestMigrationsCommand) Name() string {
	return "test-migrations"
}

func (c *TestMigrationsCommand) Description() string {
	return "Test database migrations (up/down/idempotency)"
}

// Run exercises the full migration cycle against a scratch database:
// up from zero, down to zero, then up again to prove the down steps
// leave nothing behind that would break a re-apply.
func (c *TestMigrationsCommand) Run(args []string) error {
	banner("Testing database migrations...")

	dbName := appName + "_test_migrations"
	dbUser := getEnv("DB_USER", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbPass := getEnv("DB_PASSWORD", "postgres")

	psql := func(sql string) error {
		return runQuiet("psql", "-h", dbHost, "-p", dbPort, "-U", dbUser, "-c", sql)
	}

	defer func() {
		step("Cleaning up test database...")
		_ = psql(fmt.Sprintf("DROP DATABASE IF EXISTS %s;", dbName))
	}()

	step("Creating test database: %s", dbName)
	_ = psql(fmt.Sprintf("DROP DATABASE IF EXISTS %s;", dbName))
	if err := psql(fmt.Sprintf("CREATE DATABASE %s;", dbName)); err != nil {
		fail("Error creating database: %v", err)
		return fmt.Errorf("database creation failed")
	}

	// Env vars keep the password out of the process table
	os.Setenv("GOOSE_DRIVER", "postgres")
	os.Setenv("GOOSE_DBSTRING",
		fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName))

	step("Testing UP migrations...")
	versionUp, err := c.migrateTo("up")
	if err != nil {
		return err
	}
	if strings.Contains(versionUp, "version 0") {
		fail("UP migrations did not update version (version is 0)")
		return fmt.Errorf("migrations up failed (version 0)")
	}
	ok("UP migrations completed (Version: %s)", versionUp)

	step("Testing DOWN migrations (all)...")
	versionDown, err := c.migrateTo("down-to", "0")
	if err != nil {
		return err
	}
	if !strings.Contains(versionDown, "version 0") {
		fail("DOWN migrations did not reset version (Version: %s)", versionDown)
		return fmt.Errorf("migrations down failed (version != 0)")
	}
	ok("DOWN migrations completed (Version: %s)", versionDown)

	step("Testing UP migrations again (idempotency)...")
	versionReUp, err := c.migrateTo("up")
	if err != nil {
		return err
	}
	if versionReUp != versionUp {
		fail("Migration count/version mismatch (%s vs %s)", versionUp, versionReUp)
		return fmt.Errorf("idempotency check failed")
	}
	ok("UP migrations completed again (Version: %s)", versionReUp)

	ok("All migration tests passed!")
	return nil
}

// migrateTo runs a goose command and reports the resulting version.
func (c *TestMigrationsCommand) migrateTo(gooseArgs ...string) (string, error) {
	run := append([]string{"run", "github.com/pressly/goose/v3/cmd/goose", "-dir", "migrations"}, gooseArgs...)
	if err := runLoud("go", run...); err != nil {
		fail("Error running goose %s: %v", strings.Join(gooseArgs, " "), err)
		return "", fmt.Errorf("goose %s failed", strings.Join(gooseArgs, " "))
	}

	out, err := cmdOutput("go", "run", "github.com/pressly/goose/v3/cmd/goose", "-dir", "migrations", "version")
	if err != nil {
		fail("Error getting goose version: %v", err)
		return "", fmt.Errorf("failed to get goose version")
	}
	return strings.TrimSpace(out), nil
}
