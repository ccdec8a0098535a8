package guide

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
)

// GuideFileExtension is the file suffix guide sheets are stored under
const GuideFileExtension = ".txt"

// SectionDelimiter separates the description from the drill list
const SectionDelimiter = "---"

// DrillPrefix is an optional bullet marker stripped from drill lines
const DrillPrefix = "- "

// ErrMalformedGuide marks a guide file without the section delimiter
var ErrMalformedGuide = errors.New("guide file is missing the section delimiter")

// Guide is one pillar's tip sheet: a description and a drill list
type Guide struct {
	Pillar      domain.Pillar `json:"pillar"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Drills      []string      `json:"drills"`
}

// Loader handles loading and caching pillar guides from text files
type Loader struct {
	dir     string
	cache   map[domain.Pillar]*Guide
	cacheMu sync.RWMutex
	loaded  bool
}

// NewLoader creates a new guide loader
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[domain.Pillar]*Guide),
	}
}

// Load reads all guide files from the directory. File base names must be
// pillar names; anything else is a config mistake and fails the load.
func (l *Loader) Load() error {
	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read guides directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), GuideFileExtension) {
			continue
		}

		pillar := domain.Pillar(strings.TrimSuffix(entry.Name(), GuideFileExtension))
		if !pillar.Valid() {
			return fmt.Errorf("%w: guide file %q", domain.ErrUnknownPillar, entry.Name())
		}

		guide, err := l.loadGuideFile(filepath.Join(l.dir, entry.Name()), pillar)
		if err != nil {
			return fmt.Errorf("failed to load guide %s: %w", pillar, err)
		}

		l.cache[pillar] = guide
	}

	l.loaded = true
	return nil
}

// loadGuideFile loads and parses a single guide sheet
func (l *Loader) loadGuideFile(path string, pillar domain.Pillar) (*Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	description, drills, err := parseGuide(string(data))
	if err != nil {
		return nil, err
	}

	return &Guide{
		Pillar:      pillar,
		Title:       cases.Title(language.English).String(string(pillar)),
		Description: description,
		Drills:      drills,
	}, nil
}

// parseGuide splits a sheet into its description (above the delimiter)
// and drill list (one drill per non-empty line below it)
func parseGuide(content string) (string, []string, error) {
	var descriptionLines []string
	var drills []string
	delimited := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == SectionDelimiter {
			delimited = true
			continue
		}

		if !delimited {
			descriptionLines = append(descriptionLines, line)
			continue
		}
		if trimmed == "" {
			continue
		}
		drills = append(drills, strings.TrimPrefix(trimmed, DrillPrefix))
	}

	if !delimited {
		return "", nil, ErrMalformedGuide
	}

	description := strings.TrimSpace(strings.Join(descriptionLines, "\n"))
	return description, drills, nil
}

// GetGuide returns the tip sheet for a pillar
func (l *Loader) GetGuide(pillar domain.Pillar) (*Guide, bool) {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()

	// Lazy load if not already loaded
	if !l.loaded {
		l.cacheMu.RUnlock()
		if err := l.Load(); err != nil {
			l.cacheMu.RLock()
			return nil, false
		}
		l.cacheMu.RLock()
	}

	guide, ok := l.cache[pillar]
	return guide, ok
}

// GetAllGuides returns all loaded guides
func (l *Loader) GetAllGuides() map[domain.Pillar]*Guide {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()

	if !l.loaded {
		l.cacheMu.RUnlock()
		_ = l.Load()
		l.cacheMu.RLock()
	}

	// Return a copy to prevent modification
	result := make(map[domain.Pillar]*Guide, len(l.cache))
	for k, v := range l.cache {
		result[k] = v
	}
	return result
}
