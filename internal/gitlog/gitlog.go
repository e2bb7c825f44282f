// Package gitlog retrieves one line per commit for a revision range, in the
// form "(<short hash>) <subject>". Lines come either from the git binary
// (CLISource) or from go-git without any external binary (RepoSource).
package gitlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Backend names accepted by New.
const (
	BackendCLI   = "cli"
	BackendGoGit = "gogit"
)

// LogFormat is the pretty format passed to git log.
const LogFormat = "format:(%h) %s"

// debugLogger is a function that logs debug messages when debug mode is enabled.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for log retrieval.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Source produces raw log lines for a revision range, newest first.
type Source interface {
	Lines(ctx context.Context, rangeSpec string) ([]string, error)
}

// RetrievalError reports a failed log retrieval.
type RetrievalError struct {
	Range  string
	Stderr string
	Err    error
}

func (e *RetrievalError) Error() string {
	msg := fmt.Sprintf("retrieving git log for %q: %v", e.Range, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// CLISource runs the git binary.
type CLISource struct {
	// Binary is the git executable, "git" when empty.
	Binary string
	// RepoPath is passed as -C; the current directory when empty.
	RepoPath string
	// Env is appended to the inherited environment.
	Env []string
}

// Args returns the git arguments used for rangeSpec. The range sits between
// --end-of-options and "--" so it is only ever read as a revision.
func (s *CLISource) Args(rangeSpec string) []string {
	var args []string
	if s.RepoPath != "" {
		args = append(args, "-C", s.RepoPath)
	}
	args = append(args, "log", "--no-color", "--pretty="+LogFormat, "--end-of-options")
	if rangeSpec != "" {
		args = append(args, rangeSpec)
	}
	return append(args, "--")
}

// Lines runs git log and splits its output into lines.
func (s *CLISource) Lines(ctx context.Context, rangeSpec string) ([]string, error) {
	binary := s.Binary
	if binary == "" {
		binary = "git"
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, &RetrievalError{Range: rangeSpec, Err: fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)}
	}

	args := s.Args(rangeSpec)
	logDebug("[gitlog] running %s %s", path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, path, args...)
	if len(s.Env) > 0 {
		cmd.Env = append(cmd.Environ(), s.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &RetrievalError{
			Range:  rangeSpec,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	lines := SplitLines(stdout.String())
	logDebug("[gitlog] git log returned %d lines", len(lines))
	return lines, nil
}

// SplitLines splits command output into lines, dropping carriage returns
// and empty lines.
func SplitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ErrBinaryNotFound is returned when the git executable cannot be located.
var ErrBinaryNotFound = errors.New("git executable not found")

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown git backend")

// New returns the Source for backend. The go-git backend opens the repository
// at repoPath (or the current directory) immediately.
func New(backend, binary, repoPath string) (Source, error) {
	switch backend {
	case BackendCLI, "":
		return &CLISource{Binary: binary, RepoPath: repoPath}, nil
	case BackendGoGit:
		return OpenRepoSource(repoPath)
	default:
		return nil, fmt.Errorf("%w %q (valid: %s, %s)", ErrUnknownBackend, backend, BackendCLI, BackendGoGit)
	}
}
