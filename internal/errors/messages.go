package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the changegen CLI.

// Usage is the command synopsis shown with argument errors.
const Usage = "changegen <range> [-d <description>] [flags]"

// MissingRange creates an error for a missing or extra positional argument.
func MissingRange(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("expected exactly one revision range, got %d arguments", got),
		Usage,
		"Pass a range such as v0.1.0..v0.2.0 or HEAD~10..HEAD",
		"Quote descriptions that contain spaces: -d \"Release notes\"",
	)
}

// InvalidFormat creates an error for an unknown output format.
func InvalidFormat(format string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown output format %q", format),
		fmt.Sprintf("Use one of: %s", strings.Join(valid, ", ")),
	)
}

// InvalidBackend creates an error for an unknown git backend.
func InvalidBackend(backend string, valid []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown git backend %q", backend),
		fmt.Sprintf("Use one of: %s", strings.Join(valid, ", ")),
	)
}

// InvalidConfig creates an error for an environment setting that failed validation.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the CHANGEGEN_* environment variables",
		"Unset a variable to fall back to its default",
	)
}

// LogRetrievalFailed creates an error for a failed git log.
func LogRetrievalFailed(rangeSpec string, err error) *CLIError {
	return WrapWithMessage(err, Retrieval,
		fmt.Sprintf("could not read commits for %q", rangeSpec),
		"Check that both ends of the range exist: git rev-parse <rev>",
		"Run from inside the repository or pass --repo <path>",
		"Make sure git is installed and in your PATH, or use --backend gogit",
	)
}

// GitNotFound creates an error for a git executable missing from PATH.
func GitNotFound(binary string, err error) *CLIError {
	return WrapWithMessage(err, Retrieval,
		fmt.Sprintf("git executable %q not found", binary),
		"Install git and make sure it is in your PATH",
		"Point CHANGEGEN_GIT_BINARY at the executable",
		"Or read the repository without git using --backend gogit",
	)
}

// UnsupportedRange creates an error for range syntax the selected backend cannot evaluate.
func UnsupportedRange(rangeSpec string, err error) *CLIError {
	return WrapWithMessage(err, Argument,
		fmt.Sprintf("range %q is not supported by the go-git backend", rangeSpec),
		"Use A..B or a single revision",
		"Or switch to the git binary with --backend cli",
	)
}

// RetrievalTimeout creates an error for a git log that exceeded the configured timeout.
func RetrievalTimeout(rangeSpec string, timeout fmt.Stringer) *CLIError {
	return NewRetrievalError(
		fmt.Sprintf("reading commits for %q timed out after %s", rangeSpec, timeout),
		"Narrow the range",
		"Raise the limit with CHANGEGEN_TIMEOUT (e.g. 2m), or set it to 0 to disable",
	)
}

// RenderFailed creates an error for a failure while writing the document.
func RenderFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime, "writing changelog")
}
