package main

import (
	"fmt"
	"io"
	"os"
)

type SetupCommand struct{}

func (c *SetupCommand) Name() string {
	return "setup"
}

func (c *SetupCommand) Description() string {
	return "Setup development environment"
}

// Run walks a new checkout to a runnable state: tool checks, .env,
// database, migrations, swagger docs.
func (c *SetupCommand) Run(args []string) error {
	banner("Starting Environment Setup")

	steps := []struct {
		label string
		fn    func() error
	}{
		{"Checking dependencies", func() error { return (&CheckDepsCommand{}).Run(nil) }},
		{"Configuring environment", c.ensureEnvFile},
		{"Starting database", func() error { return (&CheckDBCommand{}).Run(nil) }},
		{"Running migrations", func() error { return (&MigrateCommand{}).Run([]string{"up"}) }},
		{"Generating swagger docs", c.generateDocs},
	}

	for i, s := range steps {
		step("Step %d/%d: %s...", i+1, len(steps), s.label)
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s failed: %w", s.label, err)
		}
	}

	ok("Setup complete! You can now run 'go run ./cmd/app'.")
	return nil
}

func (c *SetupCommand) ensureEnvFile() error {
	if _, err := os.Stat(".env"); err == nil {
		ok(".env already exists")
		return nil
	}

	step("Creating .env from .env.example...")
	if err := copyFile(".env.example", ".env"); err != nil {
		return fmt.Errorf("failed to create .env: %w", err)
	}
	ok(".env created")
	// main already ran godotenv.Load before this file existed, so the
	// defaults apply for the rest of this run
	step("Note: .env created. Re-run devtool to pick up custom values.")
	return nil
}

func (c *SetupCommand) generateDocs() error {
	return runLoud("go", "run", "github.com/swaggo/swag/cmd/swag", "init", "-g", "cmd/app/main.go", "-o", "docs")
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}
