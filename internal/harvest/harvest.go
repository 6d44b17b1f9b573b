// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest orchestrates the per-subject fetch, date-filter, and
// JSONL dump cycle.
package harvest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// Source produces the most recent paper records for one subject
// category. *feed.Client implements it; tests substitute stubs.
type Source interface {
	Recent(ctx context.Context, category string) ([]types.PaperRecord, error)
}

// SubjectOutcome describes what happened for a single subject.
type SubjectOutcome struct {
	Subject string `yaml:"subject" json:"subject"`
	Date    string `yaml:"date,omitempty" json:"date,omitempty"`
	Papers  int    `yaml:"papers" json:"papers"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`

	// Skipped means the dated file already existed and was left untouched.
	Skipped bool   `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Err     string `yaml:"error,omitempty" json:"error,omitempty"`
}

// BatchResult holds the outcome of one harvest run.
type BatchResult struct {
	Saved    int
	Skipped  int
	Empty    int
	Failed   int
	Outcomes []SubjectOutcome
}

// Total returns the total number of subjects processed.
func (r BatchResult) Total() int {
	return r.Saved + r.Skipped + r.Empty + r.Failed
}

// HasFailures reports whether any subject failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run processes every configured subject in order, printing per-subject
// status and returning a summary. A fetch, parse, or write failure for
// one subject is reported and does not stop the remaining subjects.
func Run(ctx context.Context, src Source, cfg types.HarvestConfig, w io.Writer) (BatchResult, error) {
	if len(cfg.Subjects) == 0 {
		return BatchResult{}, fmt.Errorf("no subjects configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	var result BatchResult
	for _, subject := range cfg.Subjects {
		outcome := harvestSubject(ctx, src, cfg, subject, w)
		switch {
		case outcome.Err != "":
			result.Failed++
		case outcome.Path == "":
			result.Empty++
		case outcome.Skipped:
			result.Skipped++
		default:
			result.Saved++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	fmt.Fprintf(w, "\nHarvest summary: %d saved, %d skipped, %d empty, %d failed (total: %d)\n",
		result.Saved, result.Skipped, result.Empty, result.Failed, result.Total())
	return result, nil
}

// harvestSubject runs the full cycle for one subject: fetch and parse
// the feed, keep the most recent day's records, write the dated JSONL
// file, and refresh the mirror.
func harvestSubject(ctx context.Context, src Source, cfg types.HarvestConfig, subject string, w io.Writer) SubjectOutcome {
	out := SubjectOutcome{Subject: subject}

	records, err := src.Recent(ctx, subject)
	if err != nil {
		out.Err = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", subject, err)
		return out
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "%s: no papers found\n", subject)
		return out
	}

	date := LatestDate(records)
	if date == "" {
		fmt.Fprintf(w, "%s: no usable updated dates\n", subject)
		return out
	}

	filtered := FilterByDate(records, date)
	out.Date = date
	out.Papers = len(filtered)
	out.Path = filepath.Join(cfg.DataDir, fmt.Sprintf("%s.%s.jsonl", subject, date))

	wrote, err := WriteJSONL(out.Path, filtered, cfg.Overwrite)
	if err != nil {
		out.Err = fmt.Sprintf("writing %s: %v", out.Path, err)
		fmt.Fprintf(w, "failed:  %s (%s)\n", subject, out.Err)
		return out
	}
	if wrote {
		fmt.Fprintf(w, "saved %d papers to %s\n", len(filtered), out.Path)
	} else {
		out.Skipped = true
		fmt.Fprintf(w, "skipped: %s (%s already exists)\n", subject, out.Path)
	}

	// The mirror is refreshed unconditionally, even when the dated file
	// was left in place, so it always reflects the last run.
	if cfg.MirrorFile != "" {
		mirror := filepath.Join(cfg.DataDir, cfg.MirrorFile)
		if _, err := WriteJSONL(mirror, filtered, true); err != nil {
			out.Err = fmt.Sprintf("writing mirror %s: %v", mirror, err)
			fmt.Fprintf(w, "failed:  %s (%s)\n", subject, out.Err)
		}
	}
	return out
}

// LatestDate returns the maximum YYYY-MM-DD prefix of the records'
// updated timestamps, or "" when none carries a usable date. The feed
// is requested sorted by update time, but that ordering is not
// guaranteed to survive page concatenation, so the first entry's date
// is not trusted.
func LatestDate(records []types.PaperRecord) string {
	latest := ""
	for _, r := range records {
		if d := r.UpdatedDate(); d > latest {
			latest = d
		}
	}
	return latest
}

// FilterByDate keeps the records whose updated timestamp starts with
// date. Prefix matching tolerates the time suffix after the date.
func FilterByDate(records []types.PaperRecord, date string) []types.PaperRecord {
	var filtered []types.PaperRecord
	for _, r := range records {
		if r.Updated != nil && strings.HasPrefix(*r.Updated, date) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
