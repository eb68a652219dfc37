package twml

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lintPage = `<html><body>
<div data-tw-p="4 print:4">
  <p data-tw-colour="red">x</p>
</div>
</body></html>`

func TestLint(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/site/index.html": lintPage,
		"/site/tokens.css": ":root { --color-primary: #000; --space: 4px; }",
	})

	result, err := Lint(context.Background(), fs, LintConfig{Config: testConfig()}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 2, result.Elements)
	assert.Equal(t, 3, result.Rules)
	assert.Equal(t, 1, result.Resolved)
	assert.Equal(t, 2, result.Unrecognized)
	assert.Equal(t, 2, result.Tokens)
	assert.False(t, result.HasErrors())

	require.Len(t, result.Issues, 2)

	first := result.Issues[0]
	assert.Equal(t, LinterName, first.FromLinter)
	assert.Equal(t, SeverityWarning, first.Severity)
	assert.Equal(t, `unrecognized utility "print:p-4": unknown variant "print"`, first.Text)
	assert.Equal(t, IssuePos{Filename: "/site/index.html", Line: 2, Column: 19}, first.Pos)
	assert.Equal(t, []string{`<div data-tw-p="4 print:4">`}, first.SourceLines)

	second := result.Issues[1]
	assert.Equal(t, `unrecognized utility "colour-red": unknown property "colour"`, second.Text)
	assert.Equal(t, 3, second.Pos.Line)
	assert.Equal(t, 22, second.Pos.Column)

	require.Len(t, result.TopUnrecognized, 2)
	assert.Equal(t, "colour-red", result.TopUnrecognized[0].Class)
	assert.Equal(t, 1, result.TopUnrecognized[0].Occurrences)
}

func TestLintCountsOccurrencesAcrossDocuments(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/site/a.html": `<p data-tw-colour="red">a</p>`,
		"/site/b.html": `<p data-tw-colour="red">b</p>`,
		"/site/c.html": `<p data-tw-p="print:4">c</p>`,
	})

	result, err := Lint(context.Background(), fs, LintConfig{Config: testConfig()}, nil)
	require.NoError(t, err)

	require.Len(t, result.TopUnrecognized, 2)
	assert.Equal(t, TokenCount{Class: "colour-red", Reason: `unknown property "colour"`, Occurrences: 2}, result.TopUnrecognized[0])
	assert.Equal(t, "print:p-4", result.TopUnrecognized[1].Class)
	assert.Equal(t, "/site/a.html", result.Issues[0].Pos.Filename)
}

func TestLintLimits(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/site/a.html": `<p data-tw-colour="red">a</p>`,
		"/site/b.html": `<p data-tw-colour="red">b</p>`,
		"/site/c.html": `<p data-tw-colour="red">c</p>`,
	})

	config := LintConfig{Config: testConfig(), MaxSameIssues: 1}
	result, err := Lint(context.Background(), fs, config, nil)
	require.NoError(t, err)

	assert.Len(t, result.Issues, 1)
	assert.Equal(t, 2, result.TruncatedCount)
}

func TestLintCancelled(t *testing.T) {
	fs := memFS(t, map[string]string{"/site/a.html": `<p data-tw-p="4">a</p>`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Lint(ctx, fs, LintConfig{Config: testConfig()}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocateToken(t *testing.T) {
	tests := []struct {
		name   string
		source string
		attr   string
		token  string
		line   int
		col    int
		text   string
	}{
		{
			name:   "double quoted",
			source: `<p data-tw-p="4">`,
			attr:   "data-tw-p",
			token:  "4",
			line:   1,
			col:    15,
			text:   `<p data-tw-p="4">`,
		},
		{
			name:   "whole field only",
			source: `<p data-tw-p="14 4">`,
			attr:   "data-tw-p",
			token:  "4",
			line:   1,
			col:    18,
			text:   `<p data-tw-p="14 4">`,
		},
		{
			name:   "second attribute holds the token",
			source: "<p data-tw-p=\"2\">\n<p data-tw-p='hover:4'>",
			attr:   "data-tw-p",
			token:  "hover:4",
			line:   2,
			col:    15,
			text:   "<p data-tw-p='hover:4'>",
		},
		{
			name:   "unquoted value",
			source: "<p data-tw-m=2>",
			attr:   "data-tw-m",
			token:  "2",
			line:   1,
			col:    14,
			text:   "<p data-tw-m=2>",
		},
		{
			name:   "attribute name is case insensitive",
			source: `<P DATA-TW-P="4">`,
			attr:   "data-tw-p",
			token:  "4",
			line:   1,
			col:    15,
			text:   `<P DATA-TW-P="4">`,
		},
		{
			name:   "longer attribute name does not match",
			source: `<p xdata-tw-p="4">`,
			attr:   "data-tw-p",
			token:  "4",
			line:   1,
			col:    0,
			text:   "",
		},
		{
			name:   "token missing falls back to attribute",
			source: "\n  <p data-tw-p=\"2\">",
			attr:   "data-tw-p",
			token:  "4",
			line:   2,
			col:    6,
			text:   `  <p data-tw-p="2">`,
		},
		{
			name:   "crlf line endings",
			source: "<html>\r\n<p data-tw-p=\"4\">\r\n",
			attr:   "data-tw-p",
			token:  "4",
			line:   2,
			col:    15,
			text:   `<p data-tw-p="4">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col, text := locateToken(tt.source, tt.attr, tt.token)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestIndexField(t *testing.T) {
	tests := []struct {
		s     string
		token string
		want  int
	}{
		{"4", "4", 0},
		{"14 4", "4", 3},
		{"hover:4 4", "4", 8},
		{"  4  ", "4", 2},
		{"44", "4", -1},
		{"", "4", -1},
		{"4", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, indexField(tt.s, tt.token))
		})
	}
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{Text: "a"}, {Text: "a"}, {Text: "a"}, {Text: "b"}, {Text: "c"},
	}

	tests := []struct {
		name      string
		config    LintConfig
		wantTexts []string
		truncated int
	}{
		{
			name:      "per linter",
			config:    LintConfig{MaxIssuesPerLinter: 2},
			wantTexts: []string{"a", "a"},
			truncated: 3,
		},
		{
			name:      "same issues",
			config:    LintConfig{MaxSameIssues: 1},
			wantTexts: []string{"a", "b", "c"},
			truncated: 2,
		},
		{
			name:      "both",
			config:    LintConfig{MaxIssuesPerLinter: 4, MaxSameIssues: 2},
			wantTexts: []string{"a", "a", "b"},
			truncated: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]Issue(nil), issues...)
			got, truncated := limitIssues(input, tt.config)

			texts := make([]string, len(got))
			for i, issue := range got {
				texts[i] = issue.Text
			}
			assert.Equal(t, tt.wantTexts, texts)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}
