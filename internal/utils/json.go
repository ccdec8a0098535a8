package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON decodes the JSON file at path into target.
func LoadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes data to path as indented JSON. Files are written 0600:
// exported catalogs and dead-letter payloads are operator files, not assets
// other processes should read.
func SaveJSON(path string, data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal for %s: %w", path, err)
	}
	if err := os.WriteFile(path, encoded, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
