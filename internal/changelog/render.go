package changelog

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Format selects a document renderer.
type Format string

const (
	// FormatText is the fixed changelog template.
	FormatText Format = "text"
	// FormatYAML is a machine-readable dump of the report.
	FormatYAML Format = "yaml"
	// FormatPretty is a colored terminal view.
	FormatPretty Format = "pretty"
)

// ValidFormats returns the supported format names.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatYAML), string(FormatPretty)}
}

// ParseFormat converts a format name, rejecting unknown names.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatYAML, FormatPretty:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(ValidFormats(), ", "))
	}
}

// Document is a report plus the header information rendered above it.
type Document struct {
	Range       string
	Description string
	Report      *Report

	// IncludeUncategorized appends an Uncategorized section to text and pretty output.
	IncludeUncategorized bool
}

// Render writes the document in the given format.
func Render(w io.Writer, doc Document, format Format, opts FormatOptions) error {
	switch format {
	case FormatText:
		return RenderText(w, doc)
	case FormatYAML:
		return RenderYAML(w, doc)
	case FormatPretty:
		return FormatTerminal(w, doc, opts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// textTemplate is the changelog document layout. Section headings are fixed.
const textTemplate = `{{.Range}}
==========
{{.Description}}


Breaking Changes
----------------
{{.Breaking}}

Features
--------
{{.Features}}

Fix
---
{{.Fixes}}

Changes
--------
{{.Other}}

{{if .IncludeUncategorized}}Uncategorized
-------------
{{.Uncategorized}}

{{end}}`

var documentTemplate = template.Must(template.New("changelog").Parse(textTemplate))

// textData holds pre-rendered sections for the text template.
type textData struct {
	Range                string
	Description          string
	Breaking             string
	Features             string
	Fixes                string
	Other                string
	Uncategorized        string
	IncludeUncategorized bool
}

// RenderText writes the document using the fixed changelog template.
func RenderText(w io.Writer, doc Document) error {
	report := reportOrEmpty(doc.Report)

	data := textData{
		Range:                doc.Range,
		Description:          doc.Description,
		Breaking:             report.Breaking.Render(),
		Features:             report.Features.Render(),
		Fixes:                report.Fixes.Render(),
		Other:                report.Other.Render(),
		Uncategorized:        report.RenderUncategorized(),
		IncludeUncategorized: doc.IncludeUncategorized,
	}

	if err := documentTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering changelog template: %w", err)
	}
	return nil
}

// RenderTextString is a convenience function that renders the text document to a string.
func RenderTextString(doc Document) (string, error) {
	var b strings.Builder
	if err := RenderText(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// yamlTitle is the serialized form of a commit title.
type yamlTitle struct {
	Hash      string `yaml:"hash"`
	Type      string `yaml:"type"`
	Component string `yaml:"component,omitempty"`
	Summary   string `yaml:"summary"`
	Breaking  bool   `yaml:"breaking"`
}

// yamlDocument is the serialized form of a Document.
// Sections are always present so consumers can rely on the keys.
type yamlDocument struct {
	Range         string      `yaml:"range"`
	Description   string      `yaml:"description"`
	Breaking      []yamlTitle `yaml:"breaking"`
	Features      []yamlTitle `yaml:"features"`
	Fixes         []yamlTitle `yaml:"fixes"`
	Other         []yamlTitle `yaml:"other"`
	Uncategorized []string    `yaml:"uncategorized"`
}

// RenderYAML writes the document as YAML.
func RenderYAML(w io.Writer, doc Document) error {
	report := reportOrEmpty(doc.Report)

	out := yamlDocument{
		Range:         doc.Range,
		Description:   doc.Description,
		Breaking:      toYAMLTitles(report.Breaking),
		Features:      toYAMLTitles(report.Features),
		Fixes:         toYAMLTitles(report.Fixes),
		Other:         toYAMLTitles(report.Other),
		Uncategorized: append([]string{}, report.Uncategorized...),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

func toYAMLTitles(b Bucket) []yamlTitle {
	titles := make([]yamlTitle, len(b.Titles))
	for i, t := range b.Titles {
		titles[i] = yamlTitle{
			Hash:      t.Hash,
			Type:      t.Type,
			Component: t.Component,
			Summary:   t.Summary,
			Breaking:  t.Breaking,
		}
	}
	return titles
}

func reportOrEmpty(r *Report) *Report {
	if r == nil {
		return NewReport()
	}
	return r
}
