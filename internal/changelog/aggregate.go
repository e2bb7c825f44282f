package changelog

import (
	"github.com/ariel-frischer/changegen/internal/commit"
)

// debugLogger receives a record of each classification when set.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for classification.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Aggregator classifies raw log lines into a Report, one line at a time.
type Aggregator struct {
	report *Report
}

// NewAggregator creates an aggregator with an empty report.
func NewAggregator() *Aggregator {
	return &Aggregator{report: NewReport()}
}

// Add classifies one raw log line.
// Breaking titles go to Breaking Changes whatever their type; lines that do not
// parse, or whose type code has no section, are stored verbatim as uncategorized.
func (a *Aggregator) Add(line string) {
	a.report.Total++

	title, ok := commit.Parse(line)
	if !ok {
		logDebug("[changelog] no match, uncategorized: %q", line)
		a.report.Uncategorized = append(a.report.Uncategorized, line)
		return
	}

	logDebug("[changelog] parsed %q\n%s", line, title)

	bucket := a.report.Bucket(title.Category())
	if bucket == nil {
		logDebug("[changelog] type %q has no section, uncategorized", title.Type)
		a.report.Uncategorized = append(a.report.Uncategorized, line)
		return
	}

	bucket.Titles = append(bucket.Titles, title)
}

// Report returns the report built so far.
func (a *Aggregator) Report() *Report {
	return a.report
}

// Build classifies lines in order with a fresh aggregator.
func Build(lines []string) *Report {
	agg := NewAggregator()
	for _, line := range lines {
		agg.Add(line)
	}
	return agg.Report()
}
