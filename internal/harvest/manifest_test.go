package harvest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HarvestConfig{DataDir: dir}
	result := BatchResult{
		Saved:  1,
		Failed: 1,
		Outcomes: []SubjectOutcome{
			{Subject: "cs.SE", Date: "2024-01-02", Papers: 12, Path: filepath.Join(dir, "cs.SE.2024-01-02.jsonl")},
			{Subject: "cs.DC", Err: "arXiv API returned HTTP 503"},
		},
	}

	path := filepath.Join(dir, "harvest.yaml")
	require.NoError(t, WriteManifest(path, cfg, result))

	m, err := ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, dir, m.DataDir)
	assert.False(t, m.Timestamp.IsZero())
	assert.Equal(t, 1, m.Summary.Saved)
	assert.Equal(t, 1, m.Summary.Failed)

	require.Len(t, m.Subjects, 2)
	assert.Equal(t, "cs.SE", m.Subjects[0].Subject)
	assert.Equal(t, 12, m.Subjects[0].Papers)
	assert.Equal(t, "arXiv API returned HTTP 503", m.Subjects[1].Err)
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
