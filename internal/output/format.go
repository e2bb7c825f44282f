// Package output provides terminal output helpers for the changegen CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the stdout terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Count is one labeled counter of a summary.
type Count struct {
	Label string
	N     int
}

// PrintSummary prints "label: n" counters on one line after a title,
// e.g. "Summary: Commits: 12 | Features: 4 | Fixes: 2".
// Zero counters are dimmed.
func PrintSummary(out io.Writer, title string, counts []Count) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	parts := make([]string, len(counts))
	for i, c := range counts {
		entry := fmt.Sprintf("%s: %d", c.Label, c.N)
		if c.N == 0 {
			parts[i] = dim(entry)
		} else {
			parts[i] = cyan(entry)
		}
	}
	fmt.Fprintf(out, "%s %s\n", bold(title+":"), strings.Join(parts, " | "))
}
