package changelog

import (
	"strings"

	"github.com/ariel-frischer/changegen/internal/commit"
)

// EmptyPlaceholder is rendered in place of a bucket with no titles.
const EmptyPlaceholder = "Null"

// Bucket is an ordered, labeled group of titles for one report section.
// Titles keep their insertion order.
type Bucket struct {
	Category commit.Category
	Label    string
	Titles   []commit.Title
}

// Report holds the four report buckets plus the lines that could not be classified.
// A Report is built by one Aggregator and is not safe for concurrent use.
type Report struct {
	Breaking Bucket
	Features Bucket
	Fixes    Bucket
	Other    Bucket

	// Uncategorized holds raw lines, verbatim and in input order.
	Uncategorized []string

	// Total is the number of lines consumed.
	Total int
}

// NewReport returns an empty report with labeled buckets.
func NewReport() *Report {
	return &Report{
		Breaking: newBucket(commit.Breaking),
		Features: newBucket(commit.Feature),
		Fixes:    newBucket(commit.Fix),
		Other:    newBucket(commit.Other),
	}
}

func newBucket(c commit.Category) Bucket {
	return Bucket{Category: c, Label: c.String()}
}

// Len returns the number of titles in the bucket.
func (b Bucket) Len() int {
	return len(b.Titles)
}

// IsEmpty returns true if the bucket holds no titles.
func (b Bucket) IsEmpty() bool {
	return len(b.Titles) == 0
}

// Render joins the bucket's title lines with newlines.
// An empty bucket renders as EmptyPlaceholder.
func (b Bucket) Render() string {
	if b.IsEmpty() {
		return EmptyPlaceholder
	}

	lines := make([]string, len(b.Titles))
	for i, t := range b.Titles {
		lines[i] = t.Line()
	}
	return strings.Join(lines, "\n")
}

// Buckets returns the four buckets in document order.
func (r *Report) Buckets() []*Bucket {
	return []*Bucket{&r.Breaking, &r.Features, &r.Fixes, &r.Other}
}

// Bucket returns the bucket for a category, or nil for commit.Unknown.
func (r *Report) Bucket(c commit.Category) *Bucket {
	switch c {
	case commit.Breaking:
		return &r.Breaking
	case commit.Feature:
		return &r.Features
	case commit.Fix:
		return &r.Fixes
	case commit.Other:
		return &r.Other
	default:
		return nil
	}
}

// Count returns the number of entries for a category.
// commit.Unknown counts uncategorized lines.
func (r *Report) Count(c commit.Category) int {
	if b := r.Bucket(c); b != nil {
		return b.Len()
	}
	return len(r.Uncategorized)
}

// Classified returns the number of titles placed in one of the four buckets.
func (r *Report) Classified() int {
	n := 0
	for _, b := range r.Buckets() {
		n += b.Len()
	}
	return n
}

// IsEmpty returns true if the report holds no entries at all.
func (r *Report) IsEmpty() bool {
	return r.Classified() == 0 && len(r.Uncategorized) == 0
}

// RenderUncategorized renders uncategorized lines as bullets, or EmptyPlaceholder.
func (r *Report) RenderUncategorized() string {
	if len(r.Uncategorized) == 0 {
		return EmptyPlaceholder
	}

	lines := make([]string, len(r.Uncategorized))
	for i, line := range r.Uncategorized {
		lines[i] = "* " + line
	}
	return strings.Join(lines, "\n")
}
