package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overrideFile mirrors the catalog override shape the exporter writes
// and the loader reads back.
type overrideFile struct {
	Version      string           `json:"version"`
	Achievements []overrideEntry  `json:"achievements"`
	Levels       map[string][]int `json:"levels"`
}

type overrideEntry struct {
	ID          string          `json:"id"`
	Points      int             `json:"points"`
	Requirement json.RawMessage `json:"requirement"`
}

func TestLoadJSON(t *testing.T) {
	t.Run("parses an override file into the target", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "achievements.json")
		content := `{
  "version": "1",
  "achievements": [
    {"id": "first_steps", "points": 25, "requirement": {"type": "goal_completion", "target": 1}}
  ],
  "levels": {"resilient": [0, 200, 500]}
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		var file overrideFile
		require.NoError(t, LoadJSON(path, &file))

		assert.Equal(t, "1", file.Version)
		require.Len(t, file.Achievements, 1)
		assert.Equal(t, "first_steps", file.Achievements[0].ID)
		assert.JSONEq(t, `{"type": "goal_completion", "target": 1}`, string(file.Achievements[0].Requirement))
		assert.Equal(t, []int{0, 200, 500}, file.Levels["resilient"])
	})

	t.Run("names the path when the file is missing", func(t *testing.T) {
		var file overrideFile
		err := LoadJSON("/nonexistent/achievements.json", &file)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "read ")
		assert.Contains(t, err.Error(), "/nonexistent/achievements.json")
	})

	t.Run("names the path for malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": "1",}`), 0600))

		var file overrideFile
		err := LoadJSON(path, &file)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode ")
		assert.Contains(t, err.Error(), path)
	})
}

func TestSaveJSON(t *testing.T) {
	t.Run("writes an indented owner-only file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.json")
		file := overrideFile{
			Version: "1",
			Achievements: []overrideEntry{
				{ID: "streak_fire_3", Points: 50, Requirement: json.RawMessage(`{"type":"streak","target":3}`)},
			},
			Levels: map[string][]int{"fearless": {0, 200}},
		}

		require.NoError(t, SaveJSON(path, file))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "  \"version\": \"1\"")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("fails on an unwritable path", func(t *testing.T) {
		err := SaveJSON("/nonexistent/export.json", overrideFile{Version: "1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "write ")
	})

	t.Run("fails on unmarshalable data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		err := SaveJSON(path, map[string]interface{}{"ch": make(chan int)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "marshal for ")
	})
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.json")

	saved := overrideFile{
		Version: "2",
		Achievements: []overrideEntry{
			{ID: "fearless_first", Points: 75, Requirement: json.RawMessage(`{"type":"goal_completion","target":5,"pillar":"fearless"}`)},
			{ID: "points_500", Points: 100, Requirement: json.RawMessage(`{"type":"total_points","target":500}`)},
		},
		Levels: map[string][]int{
			"resilient":  {0, 200, 500, 1000, 2000},
			"relentless": {0, 200, 500, 1000, 2000},
		},
	}
	require.NoError(t, SaveJSON(path, saved))

	var loaded overrideFile
	require.NoError(t, LoadJSON(path, &loaded))

	assert.Equal(t, saved.Version, loaded.Version)
	require.Len(t, loaded.Achievements, 2)
	assert.Equal(t, "fearless_first", loaded.Achievements[0].ID)
	assert.JSONEq(t, string(saved.Achievements[1].Requirement), string(loaded.Achievements[1].Requirement))
	assert.Equal(t, saved.Levels, loaded.Levels)
}
