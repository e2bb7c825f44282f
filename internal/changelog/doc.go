// Package changelog turns a flat commit log into a categorized report.
//
// This package implements:
//   - Single-pass classification of raw log lines into report buckets
//   - The bucket rendering contract ("* component: summary" lines, "Null" when empty)
//   - Document rendering as the fixed text template, YAML, or a colored terminal view
//
// Lines are classified with internal/commit. Breaking changes always land in
// the Breaking Changes bucket; lines that do not follow the title convention,
// or whose type code has no section, are kept verbatim as uncategorized.
package changelog
