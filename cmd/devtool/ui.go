package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ANSI styling for terminal output. Commands print through these helpers so
// the whole tool reads consistently.
const (
	ansiGreen  = "\033[0;32m"
	ansiRed    = "\033[0;31m"
	ansiYellow = "\033[1;33m"
	ansiBlue   = "\033[0;34m"
	ansiReset  = "\033[0m"
)

func step(format string, a ...interface{}) {
	fmt.Printf(ansiBlue+"ℹ "+format+ansiReset+"\n", a...)
}

func ok(format string, a ...interface{}) {
	fmt.Printf(ansiGreen+"✓ "+format+ansiReset+"\n", a...)
}

func warn(format string, a ...interface{}) {
	fmt.Printf(ansiYellow+"⚠ "+format+ansiReset+"\n", a...)
}

func fail(format string, a ...interface{}) {
	fmt.Printf(ansiRed+"✗ "+format+ansiReset+"\n", a...)
}

func banner(title string) {
	fmt.Printf("\n"+ansiYellow+"=== %s ==="+ansiReset+"\n", title)
}

// rejectShellMeta refuses arguments carrying shell metacharacters. exec.Command
// never invokes a shell itself, but several commands forward their arguments to
// tools (psql, docker compose) that might, so pipes, redirects and substitution
// markers are refused up front. Separators like ';' and '&' stay allowed
// because connection strings and SQL legitimately contain them.
func rejectShellMeta(inputs ...string) error {
	metaPatterns := []string{"|", "`", "$(", "&&", "||", ">", "<"}
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("refusing argument with control bytes: %q", s)
		}
		for _, p := range metaPatterns {
			if strings.Contains(s, p) {
				return fmt.Errorf("refusing argument with shell pattern %q: %q", p, s)
			}
		}
	}
	return nil
}

// cmdOutput runs a command and returns its trimmed stdout.
func cmdOutput(name string, args ...string) (string, error) {
	if err := rejectShellMeta(append([]string{name}, args...)...); err != nil {
		return "", err
	}
	out, err := exec.Command(name, args...).Output() // #nosec G204 - args vetted above
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runQuiet runs a command discarding its output; callers report the result.
func runQuiet(name string, args ...string) error {
	if err := rejectShellMeta(append([]string{name}, args...)...); err != nil {
		return err
	}
	return exec.Command(name, args...).Run() // #nosec G204 - args vetted above
}

// runLoud runs a command streaming its output to the terminal, for long
// operations (builds, test runs) where progress matters.
func runLoud(name string, args ...string) error {
	if err := rejectShellMeta(append([]string{name}, args...)...); err != nil {
		return err
	}
	cmd := exec.Command(name, args...) // #nosec G204 - args vetted above
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
