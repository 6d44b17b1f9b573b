// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-harvest/pkg/types"
)

// pdfMediaType is the declared type of an entry link pointing at the PDF.
const pdfMediaType = "application/pdf"

// Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        *string      `xml:"id"`
	Title     *string      `xml:"title"`
	Summary   *string      `xml:"summary"`
	Published *string      `xml:"published"`
	Updated   *string      `xml:"updated"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name *string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

// Parse converts a raw Atom feed into paper records, one per entry, in
// document order. A missing element yields a null field rather than an
// error; XML that is not well-formed fails the whole parse.
func Parse(raw string) ([]types.PaperRecord, error) {
	var f atomFeed
	if err := xml.Unmarshal([]byte(raw), &f); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	records := make([]types.PaperRecord, 0, len(f.Entries))
	for _, e := range f.Entries {
		r := types.PaperRecord{
			ID:        e.ID,
			Title:     trimmed(e.Title),
			Summary:   trimmed(e.Summary),
			Published: e.Published,
			Updated:   e.Updated,
			Authors:   []string{},
		}

		for _, a := range e.Authors {
			if a.Name != nil {
				r.Authors = append(r.Authors, strings.TrimSpace(*a.Name))
			}
		}

		// When an entry carries several PDF links, the last one in
		// document order wins.
		for i := range e.Links {
			if e.Links[i].Type == pdfMediaType {
				r.PDFURL = &e.Links[i].Href
			}
		}

		records = append(records, r)
	}
	return records, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
