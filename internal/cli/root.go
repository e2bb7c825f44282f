// Package cli implements the changegen command line.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/changegen/internal/build"
	"github.com/ariel-frischer/changegen/internal/changelog"
	"github.com/ariel-frischer/changegen/internal/commit"
	clierrors "github.com/ariel-frischer/changegen/internal/errors"
	"github.com/ariel-frischer/changegen/internal/gitlog"
	"github.com/spf13/cobra"
)

// SourceFactory builds the log source for a backend.
type SourceFactory func(backend, binary, repoPath string) (gitlog.Source, error)

// options holds the parsed command flags.
type options struct {
	description   string
	format        string
	repoPath      string
	backend       string
	uncategorized bool
	plain         bool
	debug         bool
	verbose       bool
}

// NewRootCmd returns the changegen command, reading commits through gitlog.New.
func NewRootCmd() *cobra.Command {
	return newRootCmd(gitlog.New)
}

func newRootCmd(newSource SourceFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "changegen <range>",
		Short: "Generate a categorized changelog from commit titles",
		Long: `Generate a categorized changelog from the commit titles in a revision range.

Titles are expected in the form

  <type>[,<component>]: <summary>
  <type>![<component>]: <summary>

where <type> is a three letter code: ` + typeCodeHelp() + `.
The "!" separator marks a breaking change regardless of the type. Commits
that do not follow the convention are counted as uncategorized and left out
of the document unless --uncategorized is set.`,
		Example: `  # Changes since the last release
  changegen v0.1.0..HEAD -d "Second preview release"

  # Last ten commits as YAML
  changegen HEAD~10..HEAD --format yaml

  # Read the repository without the git binary
  changegen v1.0.0..v1.1.0 --backend gogit -C ../project`,
		Version:       build.Info(),
		Args:          exactlyOneRange,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts, newSource)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierrors.WrapWithMessage(err, clierrors.Argument, "invalid flag", "Run 'changegen --help' for the list of flags")
	})

	addFlags(cmd, opts)
	return cmd
}

func addFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVarP(&opts.description, "description", "d", "", "Text shown under the changelog header")
	f.StringVarP(&opts.format, "format", "f", "", "Output format: text, yaml or pretty (default from CHANGEGEN_FORMAT, else text)")
	f.BoolVar(&opts.uncategorized, "uncategorized", false, "Append the commits that do not follow the title convention")
	f.StringVarP(&opts.repoPath, "repo", "C", "", "Repository path (default: current directory)")
	f.StringVar(&opts.backend, "backend", "", "Log backend: cli (git binary) or gogit (default from CHANGEGEN_GIT_BACKEND, else cli)")
	f.BoolVar(&opts.plain, "plain", false, "Disable colors, icons and the spinner")
	f.BoolVar(&opts.debug, "debug", false, "Log parsed titles and git commands to stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print a per-category summary to stderr")
}

func exactlyOneRange(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return clierrors.MissingRange(len(args))
	}
	return nil
}

// PrintError writes err to w with remediation, converting plain errors to runtime errors.
func PrintError(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Runtime)
	}
	clierrors.FprintError(w, cliErr, plain)
}

// typeCodeHelp describes the recognised type codes, e.g. "new (Features), fix (Fixes) or rwt (Other Changes)".
func typeCodeHelp() string {
	codes := commit.TypeCodes()
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s (%s)", code, commit.CategoryForType(code))
	}
	if len(parts) < 2 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}

// validFormats lists the accepted --format values.
func validFormats() []string {
	return changelog.ValidFormats()
}

// validBackends lists the accepted --backend values.
func validBackends() []string {
	return []string{gitlog.BackendCLI, gitlog.BackendGoGit}
}
