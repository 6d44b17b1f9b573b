package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FeedConfig holds settings for the feed fetch stage.
type FeedConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of entries requested per feed (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Start is the result offset passed to the API (default 0).
	Start int `json:"start" yaml:"start"`
}

// HarvestConfig holds settings for the harvest driver.
type HarvestConfig struct {
	Feed FeedConfig `json:"feed" yaml:"feed"`

	// Subjects lists the category codes to harvest, in run order
	// (e.g. "cs.SE").
	Subjects []string `json:"subjects" yaml:"subjects"`

	// DataDir is the directory the JSONL dumps are written to.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MirrorFile is the name of the shared latest-run file inside
	// DataDir (e.g. "today.jsonl"). Empty disables the mirror.
	MirrorFile string `json:"mirror_file" yaml:"mirror_file"`

	// Overwrite replaces existing per-subject dated files instead of
	// leaving them untouched.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}
