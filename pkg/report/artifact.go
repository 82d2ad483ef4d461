package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the downloadable record of one successful generation. It is
// written to a fixed path and overwritten on every run; there is no
// versioning.
type Artifact struct {
	Topic  string `json:"topic"`
	Report string `json:"report"`
}

// Save writes the artifact as indented JSON to path.
func (a *Artifact) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a previously saved artifact from path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	return &a, nil
}
