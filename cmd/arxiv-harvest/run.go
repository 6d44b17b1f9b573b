// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-harvest/internal/feed"
	"github.com/pdiddy/arxiv-harvest/internal/harvest"
	"github.com/pdiddy/arxiv-harvest/internal/history"
	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

const (
	defaultDataDir    = "data"
	defaultMirror     = "today.jsonl"
	defaultManifest   = "harvest.yaml"
	defaultHistoryDB  = "harvest.db"
	defaultUserAgent  = "arxiv-harvest/0.1"
	defaultMaxResults = 100
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch each subject's feed and dump the latest day as JSONL",
	Long: `Run fetches the most recent feed page for every configured subject,
keeps the records from the most recent updated date, and writes one
<subject>.<date>.jsonl file per subject plus a shared today.jsonl mirror.

Existing dated files are left untouched unless --overwrite is given; the
mirror is rewritten after every subject. Subjects come from --subjects,
the config file, or the ARXIV_HARVEST_SUBJECTS environment variable.`,
	RunE: runHarvest,
}

func init() {
	runCmd.Flags().StringSlice("subjects", nil, "subject categories to harvest, in order (e.g. cs.SE,cs.DC)")
	runCmd.Flags().String("data-dir", "", "output directory for JSONL dumps (default \"data\")")
	runCmd.Flags().Int("max-results", 0, "entries requested per feed (default 100)")
	runCmd.Flags().Int("start", 0, "result offset passed to the API")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 = transport default)")
	runCmd.Flags().String("mirror", defaultMirror, "name of the shared latest-run file (empty disables)")
	runCmd.Flags().Bool("overwrite", false, "replace existing dated files instead of skipping them")
	runCmd.Flags().String("manifest", defaultManifest, "name of the YAML run manifest (empty disables)")
	runCmd.Flags().String("history-db", "", "path to the harvest history database (default <data-dir>/harvest.db)")
	runCmd.Flags().Bool("no-history", false, "do not record outcomes in the history database")

	rootCmd.AddCommand(runCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	cfg, err := harvestConfig(cmd)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: cfg.Feed.Timeout}
	src := &feed.Client{HTTP: client, Config: cfg.Feed}

	result, err := harvest.Run(context.Background(), src, cfg, os.Stdout)
	if err != nil {
		return err
	}

	if manifest, _ := cmd.Flags().GetString("manifest"); manifest != "" {
		path := filepath.Join(cfg.DataDir, manifest)
		if err := harvest.WriteManifest(path, cfg, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: manifest write failed: %v\n", err)
		}
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if err := recordHistory(cmd, cfg, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history update failed: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d subject(s) failed", result.Failed)
	}
	return nil
}

// harvestConfig assembles the driver configuration from flags, falling
// back to the viper config file and environment for anything not set on
// the command line.
func harvestConfig(cmd *cobra.Command) (types.HarvestConfig, error) {
	subjects, _ := cmd.Flags().GetStringSlice("subjects")
	if len(subjects) == 0 {
		subjects = viper.GetStringSlice("subjects")
	}
	if len(subjects) == 0 {
		return types.HarvestConfig{}, fmt.Errorf("no subjects configured: use --subjects or set subjects in the config file")
	}

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("data_dir")
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("feed.max_results")
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}
	start, _ := cmd.Flags().GetInt("start")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	mirror, _ := cmd.Flags().GetString("mirror")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	return types.HarvestConfig{
		Feed: types.FeedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			MaxResults: maxResults,
			Start:      start,
		},
		Subjects:   subjects,
		DataDir:    dataDir,
		MirrorFile: mirror,
		Overwrite:  overwrite,
	}, nil
}

// recordHistory upserts one history row per subject outcome.
func recordHistory(cmd *cobra.Command, cfg types.HarvestConfig, result harvest.BatchResult) error {
	dbPath, _ := cmd.Flags().GetString("history-db")
	if dbPath == "" {
		dbPath = filepath.Join(cfg.DataDir, defaultHistoryDB)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	for _, o := range result.Outcomes {
		e := history.Entry{
			Subject: o.Subject,
			Date:    o.Date,
			Papers:  o.Papers,
			Path:    o.Path,
			Status:  outcomeStatus(o),
		}
		if err := store.Record(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func outcomeStatus(o harvest.SubjectOutcome) string {
	switch {
	case o.Err != "":
		return "failed"
	case o.Path == "":
		return "empty"
	case o.Skipped:
		return "skipped"
	default:
		return "saved"
	}
}
