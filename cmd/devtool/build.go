package main

import (
	"fmt"
	"os"
	"time"
)

type BuildCommand struct{}

func (c *BuildCommand) Name() string {
	return "build"
}

func (c *BuildCommand) Description() string {
	return "Builds the application binaries to bin/ directory"
}

// Run compiles bin/app with version metadata stamped via ldflags, plus the
// devtool itself. The handler package reads the stamped values at runtime
// for the /version endpoint.
func (c *BuildCommand) Run(args []string) error {
	banner("Building Binaries")

	if err := os.MkdirAll("bin", 0755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	version, _ := cmdOutput("git", "describe", "--tags", "--always", "--dirty")
	if version == "" {
		version = "dev"
	}
	buildTime := time.Now().UTC().Format("2006-01-02_15:04")
	gitCommit, _ := cmdOutput("git", "rev-parse", "--short", "HEAD")
	if gitCommit == "" {
		gitCommit = "unknown"
	}

	ldflags := fmt.Sprintf(
		"-X github.com/babygoats/BabyGoats_Go/internal/handler.Version=%s "+
			"-X github.com/babygoats/BabyGoats_Go/internal/handler.BuildTime=%s "+
			"-X github.com/babygoats/BabyGoats_Go/internal/handler.GitCommit=%s",
		version, buildTime, gitCommit,
	)

	step("Building bin/app...")
	if err := runQuiet("go", "build", "-ldflags", ldflags, "-o", "bin/app", "./cmd/app"); err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}
	ok("Built: bin/app")

	step("Building bin/devtool...")
	if err := runQuiet("go", "build", "-o", "bin/devtool", "./cmd/devtool"); err != nil {
		return fmt.Errorf("failed to build devtool: %w", err)
	}
	ok("Built: bin/devtool")

	return nil
}
