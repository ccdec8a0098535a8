package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// changedGoPackages lists the package dirs touched by local edits, so test
// runs can cover just what changed. stagedOnly narrows to the index (the
// pre-commit case); otherwise the diff is taken against HEAD. Module file
// changes widen the answer to ./... since any package may be affected.
func changedGoPackages(stagedOnly bool) ([]string, error) {
	diffArgs := []string{"diff", "HEAD", "--name-only", "--diff-filter=ACMR"}
	if stagedOnly {
		diffArgs = []string{"diff", "--cached", "--name-only", "--diff-filter=ACMR"}
	}
	out, err := cmdOutput("git", diffArgs...)
	if err != nil {
		return nil, fmt.Errorf("list changed files: %w", err)
	}
	if out == "" {
		return []string{}, nil
	}

	pkgSet := make(map[string]bool)
	for _, file := range strings.Split(out, "\n") {
		file = strings.TrimSpace(file)
		switch {
		case file == "":
			continue
		case file == "go.mod" || file == "go.sum":
			return []string{"./..."}, nil
		case strings.HasSuffix(file, ".go"):
			pkgSet[packagePath(file)] = true
		}
	}

	packages := make([]string, 0, len(pkgSet))
	for pkg := range pkgSet {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages, nil
}

// packagePath converts a repo-relative file path into the ./dir form that
// go test expects.
func packagePath(file string) string {
	dir := filepath.ToSlash(filepath.Dir(file))
	if dir == "." {
		return "./"
	}
	if !strings.HasPrefix(dir, "./") {
		return "./" + dir
	}
	return dir
}
