package changelog

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/ariel-frischer/changegen/internal/output"
	"github.com/fatih/color"
)

// CategoryStyle defines the color and icon for a report section.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[commit.Category]CategoryStyle{
	commit.Breaking: {Color: color.New(color.FgRed, color.Bold), Icon: "⚠"},
	commit.Feature:  {Color: color.New(color.FgGreen), Icon: "✓"},
	commit.Fix:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	commit.Other:    {Color: color.New(color.FgBlue), Icon: "~"},
	commit.Unknown:  {Color: color.New(color.FgMagenta), Icon: "?"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// section is one rendered block of the terminal view.
type section struct {
	category commit.Category
	lines    []string
}

// FormatTerminal writes the document with terminal styling.
// Sections appear in document order; empty sections show the placeholder dimmed.
func FormatTerminal(w io.Writer, doc Document, opts FormatOptions) error {
	report := reportOrEmpty(doc.Report)
	width := resolveWidth(opts.MaxWidth)

	if err := writeDocumentHeader(doc, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range terminalSections(report, doc.IncludeUncategorized) {
		if err := writeSection(s, w, opts, width); err != nil {
			return fmt.Errorf("writing %s: %w", s.category, err)
		}
	}

	return nil
}

// terminalSections collects the bullet text of each section.
func terminalSections(r *Report, includeUncategorized bool) []section {
	var sections []section
	for _, b := range r.Buckets() {
		lines := make([]string, len(b.Titles))
		for i, t := range b.Titles {
			lines[i] = strings.TrimPrefix(t.Line(), "* ")
		}
		sections = append(sections, section{category: b.Category, lines: lines})
	}

	if includeUncategorized {
		sections = append(sections, section{
			category: commit.Unknown,
			lines:    append([]string{}, r.Uncategorized...),
		})
	}
	return sections
}

// writeDocumentHeader writes the range heading and the description.
func writeDocumentHeader(doc Document, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		if _, err := fmt.Fprintf(w, "## %s\n", doc.Range); err != nil {
			return err
		}
	} else {
		bold := color.New(color.Bold).SprintFunc()
		if _, err := fmt.Fprintf(w, "## %s\n", bold(doc.Range)); err != nil {
			return err
		}
	}

	if doc.Description != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", doc.Description); err != nil {
			return err
		}
	}
	return nil
}

// writeSection writes a single section header with its entries.
func writeSection(s section, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[s.category]

	if err := writeSectionHeader(s, style, w, opts); err != nil {
		return err
	}

	if len(s.lines) == 0 {
		return writePlaceholder(w, opts)
	}

	for _, line := range s.lines {
		if err := writeEntry(line, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeSectionHeader writes the section label with its entry count.
func writeSectionHeader(s section, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	label := fmt.Sprintf("%s (%d)", s.category, len(s.lines))

	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", label)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(label))
	return err
}

func writePlaceholder(w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "  %s\n", EmptyPlaceholder)
		return err
	}

	dim := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "  %s\n", dim(EmptyPlaceholder))
	return err
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth runes, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = []rune(strings.TrimLeft(string(remaining[breakPoint:]), " "))
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}
