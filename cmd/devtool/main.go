package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&CheckDepsCommand{})
	registry.Register(&CheckDBCommand{})
	registry.Register(&CheckCoverageCommand{})
	registry.Register(&MigrateCommand{})
	registry.Register(&SeedCommand{})
	registry.Register(&ResetDBCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&DoctorCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&EntrypointCommand{})
	registry.Register(&SetupCommand{})
	registry.Register(&BuildCommand{})
	registry.Register(&BenchCommand{})
	registry.Register(&PreCommitCommand{})
	registry.Register(&TestSecurityCommand{})
	registry.Register(&TestSSECommand{})
	registry.Register(&TestMigrationsCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "help" || name == "--help" || name == "-h" {
		registry.PrintHelp()
		return
	}

	cmd, ok := registry.Get(name)
	if !ok {
		fail("Unknown command: %s", name)
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		fail("%v", err)
		os.Exit(1)
	}
}
