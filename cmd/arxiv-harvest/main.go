// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-harvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-harvest",
	Short: "Batch-fetch recent arXiv paper metadata into JSONL dumps",
	Long: `arxiv-harvest fetches the most recent paper metadata for a set of arXiv
subject categories, keeps each subject's latest day of records, and writes
them as newline-delimited JSON files, one file per subject and date.

It is a scheduled batch job, not a service: run it from cron, inspect the
dumps, done. The history subcommand lists what previous runs produced.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-harvest.yaml or ~/.config/arxiv-harvest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-harvest"))
		}
	}

	viper.SetEnvPrefix("ARXIV_HARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
