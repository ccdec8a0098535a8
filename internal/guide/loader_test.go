package guide_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/guide"
)

func writeGuide(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write guide file: %v", err)
	}
}

func TestLoadParsesSections(t *testing.T) {
	dir := t.TempDir()
	writeGuide(t, dir, "fearless.txt", `Raise your hand first.
Growth hides in new drills.

---
- Volunteer to demonstrate
Ask one question

- Lead the warmup
`)

	loader := guide.NewLoader(dir)
	if err := loader.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	g, ok := loader.GetGuide(domain.PillarFearless)
	if !ok {
		t.Fatal("Expected fearless guide to be loaded")
	}
	if g.Pillar != domain.PillarFearless {
		t.Errorf("Expected pillar fearless, got %s", g.Pillar)
	}
	if g.Title != "Fearless" {
		t.Errorf("Expected title Fearless, got %q", g.Title)
	}

	wantDescription := "Raise your hand first.\nGrowth hides in new drills."
	if g.Description != wantDescription {
		t.Errorf("Expected description %q, got %q", wantDescription, g.Description)
	}

	wantDrills := []string{"Volunteer to demonstrate", "Ask one question", "Lead the warmup"}
	if len(g.Drills) != len(wantDrills) {
		t.Fatalf("Expected %d drills, got %d: %v", len(wantDrills), len(g.Drills), g.Drills)
	}
	for i, want := range wantDrills {
		if g.Drills[i] != want {
			t.Errorf("Expected drill %q, got %q", want, g.Drills[i])
		}
	}
}

func TestLoadRejectsUnknownPillar(t *testing.T) {
	dir := t.TempDir()
	writeGuide(t, dir, "captain.txt", "Lead the team.\n---\nSpeak up\n")

	loader := guide.NewLoader(dir)
	if err := loader.Load(); !errors.Is(err, domain.ErrUnknownPillar) {
		t.Errorf("Expected ErrUnknownPillar, got %v", err)
	}
}

func TestLoadRejectsMissingDelimiter(t *testing.T) {
	dir := t.TempDir()
	writeGuide(t, dir, "resilient.txt", "Bounce back stronger.\nNo drills here.\n")

	loader := guide.NewLoader(dir)
	if err := loader.Load(); !errors.Is(err, guide.ErrMalformedGuide) {
		t.Errorf("Expected ErrMalformedGuide, got %v", err)
	}
}

func TestLoadSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeGuide(t, dir, "resilient.txt", "Bounce back.\n---\nBreathe\n")
	writeGuide(t, dir, "notes.md", "not a guide")

	loader := guide.NewLoader(dir)
	if err := loader.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := len(loader.GetAllGuides()); got != 1 {
		t.Errorf("Expected 1 guide, got %d", got)
	}
}

func TestGetGuideLazyLoads(t *testing.T) {
	dir := t.TempDir()
	writeGuide(t, dir, "relentless.txt", "Show up.\n---\nOne more lap\n")

	// No explicit Load call
	loader := guide.NewLoader(dir)
	g, ok := loader.GetGuide(domain.PillarRelentless)
	if !ok {
		t.Fatal("Expected lazy load to find the guide")
	}
	if g.Description != "Show up." {
		t.Errorf("Unexpected description %q", g.Description)
	}
}

func TestGetGuideMissingDir(t *testing.T) {
	loader := guide.NewLoader(filepath.Join(t.TempDir(), "nope"))
	if _, ok := loader.GetGuide(domain.PillarResilient); ok {
		t.Error("Expected no guide from a missing directory")
	}
}

func TestLoadActualGuides(t *testing.T) {
	loader := guide.NewLoader(filepath.Join("..", "..", "configs", "guides"))
	if err := loader.Load(); err != nil {
		t.Fatalf("Failed to load shipped guides: %v", err)
	}

	for _, pillar := range domain.Pillars {
		g, ok := loader.GetGuide(pillar)
		if !ok {
			t.Fatalf("Expected a shipped guide for %s", pillar)
		}
		if g.Description == "" {
			t.Errorf("Expected a description for %s", pillar)
		}
		if len(g.Drills) == 0 {
			t.Errorf("Expected drills for %s", pillar)
		}
		for _, drill := range g.Drills {
			if strings.HasPrefix(drill, "- ") {
				t.Errorf("Expected bullet stripped from drill %q", drill)
			}
		}
	}

	if got := len(loader.GetAllGuides()); got != len(domain.Pillars) {
		t.Errorf("Expected %d guides, got %d", len(domain.Pillars), got)
	}
}
