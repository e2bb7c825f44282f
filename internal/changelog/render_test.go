package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleLines = []string{
	"(adad53h) rew!plugins: remove famiu/nvim-reload",
	"(4b05c2e) new,core: implement commit title parser",
	"(0c1d2e3) fix: handle empty input",
	"(9f8e7d6) rwt,cli: restructure flags",
	"(e0fbc13) rew,core: remove useless pretty arg",
	"(8eee8e5) new: initiate changelog generator",
	"Merge pull request #12",
}

func TestRenderText_LiteralShape(t *testing.T) {
	t.Parallel()

	doc := Document{
		Range:       "v0.1.0..v0.2.0",
		Description: "Second preview release.",
		Report:      Build(sampleLines),
	}

	got, err := RenderTextString(doc)
	require.NoError(t, err)

	want := "v0.1.0..v0.2.0\n" +
		"==========\n" +
		"Second preview release.\n" +
		"\n" +
		"\n" +
		"Breaking Changes\n" +
		"----------------\n" +
		"* plugins: remove famiu/nvim-reload\n" +
		"\n" +
		"Features\n" +
		"--------\n" +
		"* core: implement commit title parser\n" +
		"* initiate changelog generator\n" +
		"\n" +
		"Fix\n" +
		"---\n" +
		"* handle empty input\n" +
		"\n" +
		"Changes\n" +
		"--------\n" +
		"* cli: restructure flags\n" +
		"\n"
	assert.Equal(t, want, got)
}

func TestRenderText_EmptyBucketsShowPlaceholder(t *testing.T) {
	t.Parallel()

	got, err := RenderTextString(Document{Range: "HEAD~3..HEAD", Report: Build(nil)})
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(got, "\nNull\n"))
	assert.True(t, strings.HasPrefix(got, "HEAD~3..HEAD\n==========\n\n\n\nBreaking Changes\n"))
}

func TestRenderText_NilReport(t *testing.T) {
	t.Parallel()

	got, err := RenderTextString(Document{Range: "HEAD"})
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(got, "Null"))
}

func TestRenderText_Uncategorized(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lines    []string
		include  bool
		contains []string
		excludes []string
	}{
		"hidden by default": {
			lines:    sampleLines,
			include:  false,
			excludes: []string{"Uncategorized", "Merge pull request #12"},
		},
		"listed when requested": {
			lines:   sampleLines,
			include: true,
			contains: []string{
				"Uncategorized\n-------------\n",
				"* (e0fbc13) rew,core: remove useless pretty arg\n* Merge pull request #12\n\n",
			},
		},
		"placeholder when requested and empty": {
			lines:    []string{"(8eee8e5) new: initiate changelog generator"},
			include:  true,
			contains: []string{"Uncategorized\n-------------\nNull\n\n"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := RenderTextString(Document{
				Range:                "main",
				Report:               Build(tt.lines),
				IncludeUncategorized: tt.include,
			})
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderYAML(&buf, Document{
		Range:       "v1..v2",
		Description: "notes",
		Report:      Build(sampleLines),
	})
	require.NoError(t, err)

	var decoded yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "v1..v2", decoded.Range)
	assert.Equal(t, "notes", decoded.Description)
	require.Len(t, decoded.Breaking, 1)
	assert.Equal(t, yamlTitle{Hash: "adad53h", Type: "rew", Component: "plugins", Summary: "remove famiu/nvim-reload", Breaking: true}, decoded.Breaking[0])
	require.Len(t, decoded.Features, 2)
	assert.Len(t, decoded.Fixes, 1)
	assert.Len(t, decoded.Other, 1)
	assert.Equal(t, []string{"(e0fbc13) rew,core: remove useless pretty arg", "Merge pull request #12"}, decoded.Uncategorized)

	// component is omitted for titles without one
	assert.NotContains(t, buf.String(), "component: \"\"")
	assert.Contains(t, buf.String(), "summary: initiate changelog generator")
}

func TestRenderYAML_EmptySectionsPresent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(&buf, Document{Range: "HEAD"}))

	for _, key := range []string{"breaking: []", "features: []", "fixes: []", "other: []", "uncategorized: []"} {
		assert.Contains(t, buf.String(), key)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"text":            {input: "text", want: FormatText},
		"yaml":            {input: "yaml", want: FormatYAML},
		"pretty":          {input: "pretty", want: FormatPretty},
		"case and spaces": {input: " YAML ", want: FormatYAML},
		"unknown":         {input: "html", wantErr: true},
		"empty":           {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Dispatch(t *testing.T) {
	t.Parallel()

	doc := Document{Range: "HEAD", Report: Build(sampleLines)}
	opts := FormatOptions{Plain: true, MaxWidth: 80}

	tests := map[string]struct {
		format   Format
		contains string
	}{
		"text":   {format: FormatText, contains: "Breaking Changes\n----------------\n"},
		"yaml":   {format: FormatYAML, contains: "range: HEAD"},
		"pretty": {format: FormatPretty, contains: "### Breaking Changes (1)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Render(&buf, doc, tt.format, opts))
			assert.Contains(t, buf.String(), tt.contains)
		})
	}

	var buf bytes.Buffer
	assert.Error(t, Render(&buf, doc, Format("html"), opts))
}
