package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette renders the parts of a formatted error.
type palette struct {
	label    func(a ...any) string
	category func(a ...any) string
	message  func(a ...any) string
	usage    func(a ...any) string
	fix      func(a ...any) string
	bullet   func(a ...any) string
}

var colorPalette = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

var plainPalette = palette{
	label:    fmt.Sprint,
	category: fmt.Sprint,
	message:  fmt.Sprint,
	usage:    fmt.Sprint,
	fix:      fmt.Sprint,
	bullet:   fmt.Sprint,
}

// FormatError formats a CLIError for display in the terminal.
// Colors are dropped automatically when stderr is not a terminal or NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colorPalette)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plainPalette)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to w, without colors when plain is set.
func FprintError(w io.Writer, err *CLIError, plain bool) {
	if err == nil {
		return
	}
	if plain {
		fmt.Fprint(w, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, FormatError(err))
}
