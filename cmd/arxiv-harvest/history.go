// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-harvest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List what previous harvest runs produced",
	Long: `History lists recorded harvest outcomes, newest first: subject, date,
paper count, status, and the output file each run wrote.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("db", "", "path to the harvest history database (default <data-dir>/harvest.db)")
	historyCmd.Flags().String("subject", "", "filter by subject category")
	historyCmd.Flags().Int("limit", 20, "maximum entries to list")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dataDir := viper.GetString("data_dir")
		if dataDir == "" {
			dataDir = defaultDataDir
		}
		dbPath = filepath.Join(dataDir, defaultHistoryDB)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no history database at %s: %w", dbPath, err)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	subject, _ := cmd.Flags().GetString("subject")
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := store.Recent(context.Background(), subject, limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No harvests recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-12s  %-10s  %-6s  %-8s  %s\n",
		"Subject", "Date", "Papers", "Status", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))

	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-12s  %-10s  %-6d  %-8s  %s\n",
			e.Subject, e.Date, e.Papers, e.Status, e.Path)
	}

	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}
