package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/babygoats/BabyGoats_Go/internal/database/schema"
)

type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "reset-db"
}

func (c *ResetDBCommand) Description() string {
	return "Drop and recreate the database (pass --schema to also apply the squashed schema)"
}

func (c *ResetDBCommand) Run(args []string) error {
	applySchema := false
	for _, arg := range args {
		if arg == "--schema" {
			applySchema = true
		}
	}

	dbName := getEnv("DB_NAME", "babygoats")
	environment := getEnv("ENVIRONMENT", envDev)

	banner(fmt.Sprintf("Resetting database %s", dbName))

	// Destroying anything but a dev database needs an explicit yes
	if environment != envDev {
		warn("ENVIRONMENT is %q. This drops ALL data in %s.", environment, dbName)
		fmt.Print("Type 'yes' to continue: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != confirmYes {
			return fmt.Errorf("reset aborted")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Administrative work happens on the server's postgres database
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
	)

	conn, err := pgx.Connect(ctx, serverConnString)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer conn.Close(ctx)

	ident := pgx.Identifier{dbName}.Sanitize()

	// Open sessions block DROP DATABASE
	step("Terminating existing connections to %s...", dbName)
	_, err = conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, dbName)
	if err != nil {
		warn("Failed to terminate connections: %v", err)
	}

	step("Dropping database %s if it exists...", dbName)
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}

	step("Creating database %s...", dbName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	ok("Database %s recreated", dbName)

	if !applySchema {
		step("Next step: run 'devtool migrate up' to apply migrations")
		return nil
	}

	// Squashed schema path: immediately usable, but goose has no version
	// table afterwards. Its migrations are idempotent, so 'migrate up'
	// still works later.
	step("Applying squashed schema...")
	appConn, err := pgx.Connect(ctx, databaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", dbName, err)
	}
	defer appConn.Close(ctx)

	if _, err := appConn.Exec(ctx, schema.SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	ok("Schema applied")

	return nil
}
