package changelog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ariel-frischer/changegen/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Classification(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line          string
		wantCategory  commit.Category
		wantUncatLine bool
	}{
		"new goes to features": {
			line:         "(4b05c2e) new,core: implement commit title parser",
			wantCategory: commit.Feature,
		},
		"fix goes to fixes": {
			line:         "(1a2b3c4) fix,ui: handle empty range",
			wantCategory: commit.Fix,
		},
		"rwt goes to other": {
			line:         "(1a2b3c4) rwt: simplify parser",
			wantCategory: commit.Other,
		},
		"breaking unknown type goes to breaking": {
			line:         "(adad53h) rew!plugins: remove famiu/nvim-reload",
			wantCategory: commit.Breaking,
		},
		"breaking fix goes to breaking": {
			line:         "(1a2b3c4) fix!core: change return type",
			wantCategory: commit.Breaking,
		},
		"unknown type is uncategorized": {
			line:          "(e0fbc13) rew,core: remove useless pretty arg",
			wantUncatLine: true,
		},
		"merge commit is uncategorized": {
			line:          "Merge pull request #12",
			wantUncatLine: true,
		},
		"long type is uncategorized": {
			line:          "(1a2b3c4) feat: conventional commit",
			wantUncatLine: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := Build([]string{tt.line})
			assert.Equal(t, 1, report.Total)

			if tt.wantUncatLine {
				assert.Equal(t, []string{tt.line}, report.Uncategorized)
				assert.Equal(t, 0, report.Classified())
				return
			}

			assert.Empty(t, report.Uncategorized)
			for _, b := range report.Buckets() {
				if b.Category == tt.wantCategory {
					require.Len(t, b.Titles, 1)
				} else {
					assert.Empty(t, b.Titles, "bucket %s should be empty", b.Label)
				}
			}
		})
	}
}

func TestBuild_BreakingAppearsOnlyInBreaking(t *testing.T) {
	t.Parallel()

	lines := []string{
		"(a1) new!api: rename endpoints",
		"(a2) fix!: drop deprecated option",
		"(a3) rwt!core: rewrite scheduler",
		"(a4) zzz!: odd type code",
	}

	report := Build(lines)

	require.Len(t, report.Breaking.Titles, len(lines))
	assert.Empty(t, report.Features.Titles)
	assert.Empty(t, report.Fixes.Titles)
	assert.Empty(t, report.Other.Titles)
	assert.Empty(t, report.Uncategorized)

	for i, title := range report.Breaking.Titles {
		assert.True(t, title.Breaking)
		assert.Equal(t, fmt.Sprintf("a%d", i+1), title.Hash)
	}
}

func TestBuild_PreservesOrder(t *testing.T) {
	t.Parallel()

	var lines []string
	var want []string
	for i := 1; i <= 5; i++ {
		lines = append(lines, fmt.Sprintf("(c%d) new: feature %d", i, i))
		want = append(want, fmt.Sprintf("* feature %d", i))
		// interleave other categories to make sure they do not disturb ordering
		lines = append(lines, fmt.Sprintf("(x%d) fix: fix %d", i, i))
		lines = append(lines, fmt.Sprintf("not a title %d", i))
	}

	report := Build(lines)

	require.Len(t, report.Features.Titles, 5)
	assert.Equal(t, strings.Join(want, "\n"), report.Features.Render())
	assert.Equal(t, []string{
		"not a title 1", "not a title 2", "not a title 3", "not a title 4", "not a title 5",
	}, report.Uncategorized)
	assert.Equal(t, 15, report.Total)
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	report := Build(nil)

	assert.True(t, report.IsEmpty())
	assert.Equal(t, 0, report.Total)
	for _, b := range report.Buckets() {
		assert.Equal(t, EmptyPlaceholder, b.Render())
	}
}

func TestAggregator_Incremental(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	agg.Add("(8eee8e5) new: initiate changelog generator")
	agg.Add("Merge branch 'main'")

	report := agg.Report()
	assert.Equal(t, 1, report.Count(commit.Feature))
	assert.Equal(t, 1, report.Count(commit.Unknown))

	agg.Add("(4b05c2e) fix,core: handle carriage returns")
	assert.Equal(t, 1, agg.Report().Count(commit.Fix))
	assert.Same(t, report, agg.Report())
}

func TestSetDebugLogger(t *testing.T) {
	var messages []string
	SetDebugLogger(func(format string, args ...any) {
		messages = append(messages, fmt.Sprintf(format, args...))
	})
	defer SetDebugLogger(nil)

	Build([]string{
		"(8eee8e5) new: initiate changelog generator",
		"(e0fbc13) rew,core: remove useless pretty arg",
		"random line",
	})

	require.Len(t, messages, 4)
	assert.Contains(t, messages[0], "Component: No Component")
	assert.Contains(t, messages[2], `type "rew" has no section`)
	assert.Contains(t, messages[3], "no match")
}
