package cli

import (
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
)

// Exit codes for the changegen CLI
const (
	// ExitSuccess indicates the changelog was written
	ExitSuccess = 0

	// ExitRetrievalFailed indicates the commit log could not be read, or another runtime failure
	ExitRetrievalFailed = 1

	// ExitInvalidArguments indicates invalid command arguments or flags
	ExitInvalidArguments = 2

	// ExitConfigError indicates an invalid CHANGEGEN_* environment value
	ExitConfigError = 3
)

// ExitCode maps an error returned by the root command to a process exit code.
// Uncategorized commits never fail a run, so only errors produce non-zero codes.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return ExitRetrievalFailed
	}

	switch cliErr.Category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	default:
		return ExitRetrievalFailed
	}
}
