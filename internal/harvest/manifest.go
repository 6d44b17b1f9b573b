// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// Manifest is the on-disk summary of one harvest run. It is written
// next to the dumps after every run so a later inspection does not
// need the console output.
type Manifest struct {
	Timestamp time.Time        `yaml:"timestamp"`
	DataDir   string           `yaml:"data_dir"`
	Subjects  []SubjectOutcome `yaml:"subjects"`
	Summary   ManifestSummary  `yaml:"summary"`
}

// ManifestSummary stores the run's outcome counters.
type ManifestSummary struct {
	Saved   int `yaml:"saved"`
	Skipped int `yaml:"skipped"`
	Empty   int `yaml:"empty"`
	Failed  int `yaml:"failed"`
}

// WriteManifest saves the run summary to a YAML file.
func WriteManifest(path string, cfg types.HarvestConfig, result BatchResult) error {
	m := Manifest{
		Timestamp: time.Now().UTC(),
		DataDir:   cfg.DataDir,
		Subjects:  result.Outcomes,
		Summary: ManifestSummary{
			Saved:   result.Saved,
			Skipped: result.Skipped,
			Empty:   result.Empty,
			Failed:  result.Failed,
		},
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadManifest loads a previously written run manifest from disk.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
