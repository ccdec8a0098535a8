package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/babygoats/BabyGoats_Go/internal/domain"
	"github.com/babygoats/BabyGoats_Go/internal/progression"
	"github.com/babygoats/BabyGoats_Go/internal/utils"
)

// catalogFile mirrors the override file shape the catalog loader accepts, so
// an export can be edited and fed back via CATALOG_CONFIG_PATH.
type catalogFile struct {
	Version      string                              `json:"version"`
	Description  string                              `json:"description"`
	Achievements []progression.AchievementDefinition `json:"achievements"`
	Levels       map[string]progression.LevelTable   `json:"levels"`
}

func main() {
	outputPath := flag.String("output", "configs/achievements.export.json", "Path to write the exported catalog")
	flag.Parse()

	catalog := progression.DefaultCatalog()

	levels := make(map[string]progression.LevelTable, len(domain.Pillars))
	for _, pillar := range domain.Pillars {
		table, err := catalog.LevelTable(pillar)
		if err != nil {
			log.Fatalf("Failed to read level table for %s: %v", pillar, err)
		}
		levels[string(pillar)] = table
	}

	export := catalogFile{
		Version:      "1",
		Description:  "Exported from the compiled-in catalog. Edit and point CATALOG_CONFIG_PATH at it.",
		Achievements: catalog.Achievements(),
		Levels:       levels,
	}

	// Ensure output directory exists
	dir := filepath.Dir(*outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if err := utils.SaveJSON(*outputPath, export); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	// An export the loader cannot rebuild is worse than no export
	var check progression.CatalogConfig
	if err := utils.LoadJSON(*outputPath, &check); err != nil {
		log.Fatalf("Exported catalog does not parse back: %v", err)
	}
	if _, err := progression.NewCatalogLoader().Build(&check); err != nil {
		log.Fatalf("Exported catalog does not rebuild: %v", err)
	}

	fmt.Printf("✓ Exported %d achievements and %d level tables to %s\n",
		catalog.Size(), len(levels), *outputPath)
}
