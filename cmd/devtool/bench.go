package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

type BenchCommand struct{}

func (c *BenchCommand) Name() string {
	return "bench"
}

func (c *BenchCommand) Description() string {
	return "Run and manage benchmarks"
}

func (c *BenchCommand) Run(args []string) error {
	if len(args) == 0 {
		return c.runAll()
	}

	subcmd := args[0]
	switch subcmd {
	case "run":
		return c.runAll()
	case "hot":
		return c.runHot()
	case "save":
		return c.save()
	case "baseline":
		return c.baseline()
	case "compare":
		return c.compare()
	case "profile":
		return c.profile()
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

func (c *BenchCommand) runAll() error {
	banner("Running all benchmarks...")
	return runLoud("go", "test", "-bench=.", "-benchmem", "-benchtime=2s", "./...")
}

func (c *BenchCommand) runHot() error {
	banner("Running hot path benchmarks...")

	fmt.Println("  → Handler: RecordActivity")
	c.runBenchOrWarn("./internal/handler", "BenchmarkHandler_RecordActivity")

	fmt.Println("  → Progression: level and progress calculation")
	c.runBenchOrWarn("./internal/progression", "BenchmarkCatalog_")

	fmt.Println("  → Service: activity pipeline (full stack, stubbed repo)")
	return runLoud("go", "test", "-bench=.", "-benchmem", "-benchtime=2s", "./benchmarks/...")
}

func (c *BenchCommand) runBenchOrWarn(dir, pattern string) {
	// Validate inputs to prevent command injection
	if dir == "" || pattern == "" {
		fmt.Println("    (invalid benchmark parameters)")
		return
	}
	if strings.ContainsAny(dir, ";|&$`") || strings.ContainsAny(pattern, ";|&$`") {
		fmt.Println("    (invalid characters in benchmark parameters)")
		return
	}

	//nolint:gosec // G204: pattern and dir are validated above
	cmd := exec.Command("go", "test", "-bench="+pattern, "-benchmem", "-benchtime=2s", dir)
	cmd.Stdout = os.Stdout
	// Stderr is discarded so a missing benchmark stays quiet
	if err := cmd.Run(); err != nil {
		fmt.Println("    (benchmark not yet implemented)")
	}
}

func (c *BenchCommand) save() error {
	return c.runAndSave(fmt.Sprintf("%s.txt", time.Now().Format("20060102-150405")))
}

func (c *BenchCommand) baseline() error {
	return c.runAndSave("baseline.txt")
}

func (c *BenchCommand) runAndSave(filename string) error {
	banner("Running benchmarks and saving results...")
	if err := os.MkdirAll("benchmarks/results", 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := fmt.Sprintf("benchmarks/results/%s", filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	// We want to write to both stdout and file
	mw := io.MultiWriter(os.Stdout, f)

	cmd := exec.Command("go", "test", "-bench=.", "-benchmem", "-benchtime=2s", "./...")
	cmd.Stdout = mw
	cmd.Stderr = mw

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("benchmark execution failed: %w", err)
	}

	ok("Results saved to %s", path)
	return nil
}

func (c *BenchCommand) compare() error {
	if _, err := os.Stat("benchmarks/results/baseline.txt"); os.IsNotExist(err) {
		return fmt.Errorf("no baseline found. Run 'devtool bench baseline' first")
	}

	banner("Running benchmarks and comparing to baseline...")
	if err := os.MkdirAll("benchmarks/results", 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Run current benchmarks
	currentPath := "benchmarks/results/current.txt"

	f, err := os.Create(currentPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	cmd := exec.Command("go", "test", "-bench=.", "-benchmem", "-benchtime=2s", "./...")
	cmd.Stdout = f
	cmd.Stderr = f

	_ = cmd.Run() // Compare even if some benchmarks fail
	f.Close()     // Close before benchstat reads it

	// Benchstat runs through 'go run' so the version pinned in tools.go is used
	cmdStat := exec.Command("go", "run", "golang.org/x/perf/cmd/benchstat", "benchmarks/results/baseline.txt", currentPath)
	cmdStat.Stdout = os.Stdout
	cmdStat.Stderr = os.Stderr
	return cmdStat.Run()
}

func (c *BenchCommand) profile() error {
	banner("Profiling hot paths...")
	if err := os.MkdirAll("benchmarks/profiles", 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	fmt.Println("  → CPU profile (if benchmark exists)...")
	cmd1 := exec.Command("go", "test", "-bench=BenchmarkRecordActivity", "-cpuprofile=benchmarks/profiles/cpu.prof", "./benchmarks/progression")
	if err := cmd1.Run(); err != nil {
		cmd2 := exec.Command("go", "test", "-bench=BenchmarkCatalog_UserLevel", "-cpuprofile=benchmarks/profiles/cpu.prof", "./internal/progression")
		_ = cmd2.Run()
	}

	fmt.Println("  → Memory profile (if benchmark exists)...")
	cmd3 := exec.Command("go", "test", "-bench=BenchmarkRecordActivity", "-memprofile=benchmarks/profiles/mem.prof", "-benchmem", "./benchmarks/progression")
	if err := cmd3.Run(); err != nil {
		cmd4 := exec.Command("go", "test", "-bench=BenchmarkCatalog_UserLevel", "-memprofile=benchmarks/profiles/mem.prof", "-benchmem", "./internal/progression")
		_ = cmd4.Run()
	}

	ok("Profiles saved to benchmarks/profiles/")
	fmt.Println("")
	fmt.Println("View CPU profile with:")
	fmt.Println("  go tool pprof -http=:8080 benchmarks/profiles/cpu.prof")
	fmt.Println("View memory profile with:")
	fmt.Println("  go tool pprof -http=:8080 benchmarks/profiles/mem.prof")

	return nil
}
