//go:build tools
// +build tools

package tools

// Blank imports pin build and dev tooling in go.mod so `go run` resolves
// them at a fixed version. Nothing here is linked into the server.

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/pressly/goose/v3/cmd/goose"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
