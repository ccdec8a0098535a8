package main

import (
	"fmt"
	"os/exec"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	// An installed goose binary (e.g. in the container image) is preferred;
	// otherwise run through 'go run' so the version pinned in tools.go is used
	gooseCmd := "go"
	gooseArgs := []string{"run", "github.com/pressly/goose/v3/cmd/goose", "-dir", "migrations"}
	if path, err := exec.LookPath("goose"); err == nil {
		gooseCmd = path
		gooseArgs = []string{"-dir", "migrations"}
	}

	// Handle create command (no DB connection needed)
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}

		gooseArgs = append(gooseArgs, "create", args[1])

		migrationType := "sql"
		if len(args) > 2 {
			migrationType = args[2]
		}
		gooseArgs = append(gooseArgs, migrationType)

		return runLoud(gooseCmd, gooseArgs...)
	}

	// Other subcommands need a DB connection
	gooseArgs = append(gooseArgs, "postgres", databaseURL(), subcmd)

	// Extra args (e.g. version for up-to/down-to)
	if len(args) > 1 {
		gooseArgs = append(gooseArgs, args[1:]...)
	}

	return runLoud(gooseCmd, gooseArgs...)
}
