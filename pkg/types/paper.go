// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperRecord holds the metadata parsed from one Atom feed entry.
// Optional fields are pointers so an element that is absent from the
// feed serializes as JSON null rather than an empty string.
type PaperRecord struct {
	// ID is the stable identifier URL from the feed entry
	// (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID *string `json:"id"`

	// Title is the paper title, whitespace-trimmed.
	Title *string `json:"title"`

	// Summary is the paper abstract, whitespace-trimmed.
	Summary *string `json:"summary"`

	// Published is the submission timestamp as supplied by the feed.
	Published *string `json:"published"`

	// Updated is the last-revision timestamp as supplied by the feed.
	// All date filtering keys off this field.
	Updated *string `json:"updated"`

	// Authors lists author names in feed document order.
	Authors []string `json:"authors"`

	// PDFURL is the href of the entry's "application/pdf" link, or null
	// when the entry carries none.
	PDFURL *string `json:"pdf_url"`
}

// UpdatedDate returns the YYYY-MM-DD portion of Updated, or "" when the
// field is absent or too short to hold a date.
func (p PaperRecord) UpdatedDate() string {
	if p.Updated == nil || len(*p.Updated) < 10 {
		return ""
	}
	return (*p.Updated)[:10]
}
