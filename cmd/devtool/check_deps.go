package main

import (
	"fmt"
	"os"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	banner("Checking dependencies...")

	hasError := false

	// Check Go
	if version, err := cmdOutput("go", "version"); err == nil {
		// Output: go version go1.24.0 linux/amd64
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			ok("Go installed: %s", parts[2])
		} else {
			ok("Go installed: %s", version)
		}
	} else {
		fail("Go not found!")
		fmt.Println("   Install from: https://go.dev/dl/")
		hasError = true
	}

	// Check Docker
	if version, err := cmdOutput("docker", "--version"); err == nil {
		// Output: Docker version 24.0.5, build ced0996
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			v := strings.TrimRight(parts[2], ",")
			ok("Docker installed: %s", v)
		} else {
			ok("Docker installed: %s", version)
		}
	} else {
		fail("Docker not found!")
		fmt.Println("   Install from: https://docs.docker.com/get-docker/")
		hasError = true
	}

	// Check Docker Compose
	if version, err := cmdOutput("docker", "compose", "version"); err == nil {
		// Output: Docker Compose version v2.20.2
		parts := strings.Fields(version)
		if len(parts) >= 4 {
			ok("Docker Compose installed: %s", parts[3])
		} else {
			ok("Docker Compose installed: %s", version)
		}
	} else {
		warn("Docker Compose not found (needed for the local database)")
	}

	// Check Goose. Migrations run through 'go run', so the standalone binary
	// is only a convenience.
	if version, err := cmdOutput("goose", "--version"); err == nil {
		// Format might be "goose version:v3.26.0" or "goose version v3.26.0"
		parts := strings.Fields(version)
		v := parts[len(parts)-1]
		v = strings.TrimPrefix(v, "version:")
		ok("Goose installed: %s", v)
	} else {
		// Check GOPATH/bin
		home, _ := os.UserHomeDir()
		goosePath := fmt.Sprintf("%s/go/bin/goose", home)
		if version, err := cmdOutput(goosePath, "--version"); err == nil {
			parts := strings.Fields(version)
			v := parts[len(parts)-1]
			v = strings.TrimPrefix(v, "version:")
			ok("Goose installed (in ~/go/bin): %s", v)
		} else {
			warn("Goose not found (optional, 'devtool migrate' uses go run)")
			fmt.Println("   Install: go install github.com/pressly/goose/v3/cmd/goose@latest")
		}
	}

	// Check psql. Only test-migrations needs it.
	if version, err := cmdOutput("psql", "--version"); err == nil {
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			ok("psql installed: %s", parts[2])
		} else {
			ok("psql installed: %s", version)
		}
	} else {
		warn("psql not found (optional, needed for 'devtool test-migrations')")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}

	ok("Environment check complete!")
	return nil
}
