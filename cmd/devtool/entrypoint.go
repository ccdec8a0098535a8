package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// EntrypointCommand is the container entrypoint: block until the database
// answers, optionally snapshot it, migrate, then exec the server binary so
// it takes over PID 1 and receives signals directly.
type EntrypointCommand struct{}

func (c *EntrypointCommand) Name() string {
	return "entrypoint"
}

func (c *EntrypointCommand) Description() string {
	return "Container entrypoint (wait-for-db, backup, migrate, exec)"
}

func (c *EntrypointCommand) Run(args []string) error {
	// In a compose network the database host is the service name
	if os.Getenv("DB_HOST") == "" {
		_ = os.Setenv("DB_HOST", "db")
	}

	if err := (&WaitForDBCommand{}).Run(nil); err != nil {
		return fmt.Errorf("wait-for-db failed: %w", err)
	}

	c.backupIfNeeded()

	if err := c.migrateWithRetries(3); err != nil {
		return err
	}

	return c.execApp(args)
}

// backupIfNeeded snapshots the database before migrating, in production or
// when CREATE_BACKUP forces it. Backup problems warn and continue; a missed
// snapshot should not keep the service down.
func (c *EntrypointCommand) backupIfNeeded() {
	if os.Getenv("ENVIRONMENT") != envProduction && os.Getenv("CREATE_BACKUP") != "true" {
		return
	}

	banner("Pre-migration backup")
	if _, err := exec.LookPath("pg_dump"); err != nil {
		warn("pg_dump not found, skipping backup")
		return
	}

	backupFile := fmt.Sprintf("/tmp/backup_%s.sql", time.Now().Format("20060102_150405"))
	f, err := os.Create(backupFile)
	if err != nil {
		warn("Could not create backup file: %v", err)
		return
	}
	defer f.Close()

	dump := exec.Command("pg_dump",
		"-h", getEnv("DB_HOST", "db"),
		"-U", getEnv("DB_USER", "postgres"),
		"-d", getEnv("DB_NAME", "babygoats"))
	dump.Stdout = f
	dump.Stderr = os.Stderr
	if err := dump.Run(); err != nil {
		warn("Backup failed: %v", err)
		return
	}
	ok("Backup created: %s", backupFile)
}

// migrateWithRetries absorbs the window where Postgres accepts connections
// but is still recovering, which pg_isready alone doesn't rule out.
func (c *EntrypointCommand) migrateWithRetries(maxAttempts int) error {
	banner("Migrations")
	migrate := &MigrateCommand{}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = migrate.Run([]string{"up"}); err == nil {
			ok("Migrations completed")
			return nil
		}
		warn("Migration attempt %d failed: %v", attempt, err)
		if attempt < maxAttempts {
			step("Retrying in 5 seconds...")
			time.Sleep(5 * time.Second)
		}
	}
	return fmt.Errorf("migrations failed after %d attempts: %w", maxAttempts, err)
}

func (c *EntrypointCommand) execApp(args []string) error {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("no command to execute")
	}

	banner("Starting application")
	cmdPath, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Errorf("executable not found: %w", err)
	}

	// Replaces this process; nothing after a successful Exec runs.
	if err := syscall.Exec(cmdPath, args, os.Environ()); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}
