package twml

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twml/internal/engine"
)

func sampleResult() *LintResult {
	return &LintResult{
		FilesScanned:       3,
		Elements:           12,
		Rules:              10,
		Resolved:           8,
		PassThrough:        1,
		Unrecognized:       1,
		ResolvedPercentage: 80,
		Tokens:             5,
		ErrorCount:         1,
		Categories: []engine.CategoryStats{
			{Category: engine.CategoryLayout, Rules: 6, Tokens: 0},
			{Category: engine.CategoryVisual, Rules: 4, Tokens: 2},
		},
		TopUnrecognized: []TokenCount{
			{Class: "colour-red", Reason: `unknown property "colour"`, Occurrences: 2},
		},
		Issues: []Issue{
			{
				FromLinter:  LinterName,
				Text:        `unrecognized utility "colour-red": unknown property "colour"`,
				Severity:    SeverityWarning,
				SourceLines: []string{`<p data-tw-colour="red">`},
				Pos:         IssuePos{Filename: "site/index.html", Line: 4, Column: 20},
			},
			{
				FromLinter: LinterName,
				Text:       "document could not be rendered: read broken.html: permission denied",
				Severity:   SeverityError,
				Pos:        IssuePos{Filename: "site/broken.html", Line: 1, Column: 1},
			},
		},
		Warnings: []string{"read tokens.css: permission denied"},
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "default", formatFlag: "", expected: OutputIssues},
		{name: "issues", formatFlag: "issues", expected: OutputIssues},
		{name: "summary", formatFlag: "summary", expected: OutputSummary},
		{name: "full", formatFlag: "full", expected: OutputFull},
		{name: "json", formatFlag: "json", expected: OutputJSON},
		{name: "markdown", formatFlag: "markdown", expected: OutputMarkdown},
		{name: "markdown shorthand", formatFlag: "md", expected: OutputMarkdown},
		{name: "unknown falls back to issues", formatFlag: "xml", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Errors: 1, Warnings: 1, FilesScanned: 3}, output.Summary)
	assert.Equal(t, 10, output.Stats.Rules)
	assert.Equal(t, 80.0, output.Stats.ResolvedPercentage)
	assert.Equal(t, 5, output.Stats.Tokens)

	require.Len(t, output.Categories, 2)
	assert.Equal(t, JSONCategory{Category: "Visual", Rules: 4, Tokens: 2}, output.Categories[1])

	require.Len(t, output.Issues, 2)
	assert.Equal(t, "site/index.html", output.Issues[0].File)
	assert.Equal(t, 20, output.Issues[0].Column)
	assert.Equal(t, `<p data-tw-colour="red">`, output.Issues[0].Source)
	assert.Empty(t, output.Issues[1].Source)
	assert.Equal(t, SeverityError, output.Issues[1].Severity)

	require.Len(t, output.Unrecognized, 1)
	assert.Equal(t, 2, output.Unrecognized[0].Occurrences)
	assert.Equal(t, []string{"read tokens.css: permission denied"}, output.Warnings)
}

func TestWriteJSONEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &LintResult{}))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	// Empty collections serialize as arrays, never null.
	assert.Equal(t, []any{}, raw["issues"])
	assert.Equal(t, []any{}, raw["categories"])
	assert.Equal(t, []any{}, raw["unrecognized"])
	assert.NotContains(t, raw, "warnings")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleResult()))

	markdown := buf.String()
	assert.Contains(t, markdown, "# twml report")
	assert.Contains(t, markdown, "**2 issues** (1 error, 1 warning) in 3 documents.")
	assert.Contains(t, markdown, "| Resolved | 8 (80.0%) |")
	assert.Contains(t, markdown, "| Layout | 6 | 0 |")
	assert.Contains(t, markdown, "| `site/index.html:4:20` | warning |")
	assert.Contains(t, markdown, "## Warnings")
	assert.NotContains(t, markdown, "truncated")
}

func TestMarkdownEscaping(t *testing.T) {
	result := &LintResult{
		Issues: []Issue{{Severity: SeverityWarning, Text: "a | b\nc", Pos: IssuePos{Filename: "x.html", Line: 1, Column: 1}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, result))
	assert.Contains(t, buf.String(), `| a \| b c |`)
}

func TestWriteOutputAllFormats(t *testing.T) {
	config := LintConfig{PrintIssuedLines: true, PrintLinterName: true}

	tests := []struct {
		format   OutputFormat
		contains []string
		excludes []string
	}{
		{
			format:   OutputIssues,
			contains: []string{"site/index.html:4:20:", "(twml)", "2 issues (1 error, 1 warning):"},
			excludes: []string{"Utility Statistics"},
		},
		{
			format:   OutputSummary,
			contains: []string{"Utility Statistics", "Rules by Category", "Most Common Unrecognized"},
			excludes: []string{"site/index.html:4:20:"},
		},
		{
			format:   OutputFull,
			contains: []string{"site/index.html:4:20:", "Utility Statistics", "Warnings"},
		},
		{
			format:   OutputJSON,
			contains: []string{`"total_issues": 2`},
		},
		{
			format:   OutputMarkdown,
			contains: []string{"# twml report"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteOutput(&buf, sampleResult(), tt.format, config))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
