// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// WriteJSONL writes records to path as newline-delimited JSON, one
// compact object per line, UTF-8 with non-ASCII characters kept
// literal. When overwrite is false and the file already exists, nothing
// is written and wrote is false.
func WriteJSONL(path string, records []types.PaperRecord, overwrite bool) (wrote bool, err error) {
	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return false, nil
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			f.Close()
			return false, fmt.Errorf("encoding record: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}
