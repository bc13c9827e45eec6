package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a Result JSON document from path.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read %q: %w", path, err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report: unmarshal %q: %w", path, err)
	}
	return &r, nil
}

// Save writes a Result as indented JSON to path.
func Save(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}
