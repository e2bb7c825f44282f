package gitlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrUnsupportedRange is returned for range syntax the go-git backend cannot evaluate.
var ErrUnsupportedRange = errors.New("unsupported range syntax")

// shortHashLen matches git's minimum abbreviation for %h. With core.abbrev
// on auto, git prints longer hashes in large repositories; this backend
// always prints seven characters.
const shortHashLen = 7

// RepoSource reads the log through go-git. Hashes are abbreviated to
// shortHashLen characters, so in repositories where git auto-sizes %h
// beyond seven the two backends print different widths.
type RepoSource struct {
	repo *git.Repository
}

// NewRepoSource wraps an already opened repository.
func NewRepoSource(repo *git.Repository) *RepoSource {
	return &RepoSource{repo: repo}
}

// OpenRepoSource opens the repository containing path, or the current
// directory when path is empty.
func OpenRepoSource(path string) (*RepoSource, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[gitlog] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return NewRepoSource(repo), nil
}

// revisionRange is a parsed "from..to" expression. An empty from means no
// exclusion; an empty to means HEAD.
type revisionRange struct {
	from string
	to   string
}

// parseRange accepts "A..B", "A..", "..B" and a single revision.
func parseRange(rng string) (revisionRange, error) {
	rng = strings.TrimSpace(rng)
	if strings.Contains(rng, "...") {
		return revisionRange{}, fmt.Errorf("%w: symmetric difference %q", ErrUnsupportedRange, rng)
	}

	from, to, found := strings.Cut(rng, "..")
	if !found {
		return revisionRange{to: rng}, nil
	}
	if strings.Contains(to, "..") {
		return revisionRange{}, fmt.Errorf("%w: %q", ErrUnsupportedRange, rng)
	}
	if from == "" {
		from = "HEAD"
	}
	return revisionRange{from: from, to: to}, nil
}

// Lines lists the commits in rangeSpec, newest first by committer time.
func (s *RepoSource) Lines(ctx context.Context, rangeSpec string) ([]string, error) {
	lines, err := s.lines(ctx, rangeSpec)
	if err != nil {
		return nil, &RetrievalError{Range: rangeSpec, Err: err}
	}
	logDebug("[gitlog] go-git log returned %d lines", len(lines))
	return lines, nil
}

func (s *RepoSource) lines(ctx context.Context, rangeSpec string) ([]string, error) {
	rr, err := parseRange(rangeSpec)
	if err != nil {
		return nil, err
	}

	to, err := s.resolve(rr.to)
	if err != nil {
		return nil, err
	}

	excluded := map[plumbing.Hash]bool{}
	if rr.from != "" {
		from, err := s.resolve(rr.from)
		if err != nil {
			return nil, err
		}
		if excluded, err = s.ancestors(ctx, from); err != nil {
			return nil, err
		}
	}

	logDebug("[gitlog] walking from %s excluding %d commits", to, len(excluded))

	iter, err := s.repo.Log(&git.LogOptions{From: to, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", to, err)
	}
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded[c.Hash] {
			return nil
		}
		lines = append(lines, FormatCommit(c))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// resolve turns a revision into a commit hash, HEAD when rev is empty.
func (s *RepoSource) resolve(rev string) (plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}
	h, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return *h, nil
}

// ancestors returns every commit reachable from start, start included.
func (s *RepoSource) ancestors(ctx context.Context, start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := s.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", start, err)
	}
	defer iter.Close()

	seen := map[plumbing.Hash]bool{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// FormatCommit renders a commit the way LogFormat does: "(<short hash>) <subject>".
func FormatCommit(c *object.Commit) string {
	return fmt.Sprintf("(%s) %s", c.Hash.String()[:shortHashLen], Subject(c.Message))
}

// Subject returns the first paragraph of message with its lines joined by
// single spaces, matching git's %s. Leading blank lines are skipped and
// trailing whitespace is trimmed from every line.
func Subject(message string) string {
	var parts []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			if len(parts) > 0 {
				break
			}
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
