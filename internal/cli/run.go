package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/ariel-frischer/changegen/internal/config"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/gitlog"
	"github.com/ariel-frischer/changegen/internal/logger"
	"github.com/ariel-frischer/changegen/internal/output"
	"github.com/ariel-frischer/changegen/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// settings is the configuration after flags are applied over the environment.
type settings struct {
	format  changelog.Format
	backend string
	binary  string
	timeout time.Duration
}

func run(cmd *cobra.Command, rangeSpec string, opts *options, newSource SourceFactory) error {
	if opts.plain && !color.NoColor {
		color.NoColor = true
	}

	s, err := resolveSettings(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.New(opts.verbose, opts.debug, !opts.plain)
	log.SetOutput(cmd.ErrOrStderr())
	if log.DebugEnabled() {
		changelog.SetDebugLogger(log.Debugf)
		gitlog.SetDebugLogger(log.Debugf)
		defer changelog.SetDebugLogger(nil)
		defer gitlog.SetDebugLogger(nil)
	}
	log.Debugf("[cli] range=%q format=%s backend=%s timeout=%s", rangeSpec, s.format, s.backend, s.timeout)

	lines, err := retrieve(cmd, rangeSpec, opts, s, newSource)
	if err != nil {
		return err
	}

	report := changelog.Build(lines)
	log.Debugf("[cli] classified %d of %d lines", report.Classified(), report.Total)
	if report.Total == 0 {
		log.Warnf("no commits in range %q", rangeSpec)
	}

	doc := changelog.Document{
		Range:                rangeSpec,
		Description:          opts.description,
		Report:               report,
		IncludeUncategorized: opts.uncategorized,
	}
	if err := changelog.Render(cmd.OutOrStdout(), doc, s.format, changelog.FormatOptions{Plain: opts.plain}); err != nil {
		return clierrors.RenderFailed(err)
	}

	log.Successf("wrote %s changelog for %s", s.format, rangeSpec)

	if log.VerboseEnabled() {
		printSummary(cmd.ErrOrStderr(), report)
		if n := len(report.Uncategorized); n > 0 && !opts.uncategorized {
			log.Verbosef("%d commits do not follow the title convention; pass --uncategorized to list them", n)
		}
	}
	return nil
}

// resolveSettings loads the environment configuration and applies flags over it.
func resolveSettings(cmd *cobra.Command, opts *options) (settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return settings{}, clierrors.InvalidConfig(err)
	}

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = opts.format
	}
	format, err := changelog.ParseFormat(formatName)
	if err != nil {
		return settings{}, clierrors.InvalidFormat(formatName, validFormats())
	}

	backend := cfg.GitBackend
	if cmd.Flags().Changed("backend") {
		backend = opts.backend
	}
	if !slices.Contains(validBackends(), backend) {
		return settings{}, clierrors.InvalidBackend(backend, validBackends())
	}

	return settings{
		format:  format,
		backend: backend,
		binary:  cfg.GitBinary,
		timeout: cfg.Timeout,
	}, nil
}

// retrieve reads the log lines with a spinner on stderr, bounded by the configured timeout.
func retrieve(cmd *cobra.Command, rangeSpec string, opts *options, s settings, newSource SourceFactory) ([]string, error) {
	source, err := newSource(s.backend, s.binary, opts.repoPath)
	if err != nil {
		return nil, clierrors.LogRetrievalFailed(rangeSpec, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sp := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(),
		fmt.Sprintf("Reading commits %s", rangeSpec), !opts.plain && !opts.debug)
	sp.Start()
	lines, err := source.Lines(ctx, rangeSpec)
	sp.Stop(err == nil)

	switch {
	case err == nil:
		return lines, nil
	case errors.Is(err, context.DeadlineExceeded):
		return nil, clierrors.RetrievalTimeout(rangeSpec, s.timeout)
	case errors.Is(err, gitlog.ErrBinaryNotFound):
		return nil, clierrors.GitNotFound(s.binary, err)
	case errors.Is(err, gitlog.ErrUnsupportedRange):
		return nil, clierrors.UnsupportedRange(rangeSpec, err)
	default:
		return nil, clierrors.LogRetrievalFailed(rangeSpec, err)
	}
}

// printSummary writes per-category counters to w.
func printSummary(w io.Writer, report *changelog.Report) {
	counts := []output.Count{{Label: "Commits", N: report.Total}}
	for _, c := range []commit.Category{commit.Breaking, commit.Feature, commit.Fix, commit.Other, commit.Unknown} {
		counts = append(counts, output.Count{Label: c.String(), N: report.Count(c)})
	}
	output.PrintSummary(w, "Summary", counts)
}
