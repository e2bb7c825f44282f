// Package logger provides the leveled diagnostic logger for changegen.
// Everything it prints goes to stderr so stdout carries only the changelog.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconVerbose = "…"
	IconDebug   = "»"
)

// Logger writes leveled messages. Debug and verbose output are off unless enabled.
type Logger struct {
	verbose bool
	debug   bool
	colors  bool
	output  io.Writer
	now     func() time.Time
	mutex   sync.Mutex

	verboseColor *color.Color
	warnColor    *color.Color
	successColor *color.Color
	debugColor   *color.Color
}

// New creates a logger writing to stderr.
// Colors are disabled when NO_COLOR is set or stderr is not a terminal.
func New(verbose, debug, useColors bool) *Logger {
	if os.Getenv("NO_COLOR") != "" {
		useColors = false
	}

	return &Logger{
		verbose:      verbose,
		debug:        debug,
		colors:       useColors && isTerminal(os.Stderr),
		output:       os.Stderr,
		now:          time.Now,
		verboseColor: color.New(color.FgCyan),
		warnColor:    color.New(color.FgYellow, color.Bold),
		successColor: color.New(color.FgGreen, color.Bold),
		debugColor:   color.New(color.Faint, color.FgBlue),
	}
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}

// SetOutput changes the output writer. Colors stay on only for terminals.
func (l *Logger) SetOutput(w io.Writer) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.output = w
	if l.colors {
		l.colors = isTerminal(w)
	}
}

// DebugEnabled reports whether Debugf prints anything.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// VerboseEnabled reports whether Verbosef prints anything.
func (l *Logger) VerboseEnabled() bool {
	return l.verbose
}

func (l *Logger) write(c *color.Color, icon, level, msg string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.colors {
		c.Fprintf(l.output, "%s [%s] %s\n", icon, level, msg)
		return
	}
	fmt.Fprintf(l.output, "[%s] %s\n", level, msg)
}

// Debugf prints a timestamped debug message when debug is enabled.
// Its signature matches the SetDebugLogger hooks of the other packages.
func (l *Logger) Debugf(format string, v ...any) {
	if !l.debug {
		return
	}
	msg := fmt.Sprintf("%s %s", l.now().Format("15:04:05.000"), fmt.Sprintf(format, v...))
	l.write(l.debugColor, IconDebug, "DEBUG", msg)
}

// Verbosef prints a message when verbose is enabled.
func (l *Logger) Verbosef(format string, v ...any) {
	if !l.verbose {
		return
	}
	l.write(l.verboseColor, IconVerbose, "INFO", fmt.Sprintf(format, v...))
}

// Warnf prints a warning.
func (l *Logger) Warnf(format string, v ...any) {
	l.write(l.warnColor, IconWarning, "WARN", fmt.Sprintf(format, v...))
}

// Successf prints a success message when verbose is enabled.
func (l *Logger) Successf(format string, v ...any) {
	if !l.verbose {
		return
	}
	l.write(l.successColor, IconSuccess, "SUCCESS", fmt.Sprintf(format, v...))
}
