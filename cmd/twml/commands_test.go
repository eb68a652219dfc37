package main

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twml"
)

func TestExitStatus(t *testing.T) {
	warning := twml.Issue{Severity: twml.SeverityWarning}

	tests := []struct {
		name   string
		result twml.LintResult
		strict bool
		code   int
	}{
		{name: "clean", result: twml.LintResult{}, code: 0},
		{name: "warnings pass the soft gate", result: twml.LintResult{Issues: []twml.Issue{warning}}, code: 0},
		{name: "warnings fail in strict mode", result: twml.LintResult{Issues: []twml.Issue{warning}}, strict: true, code: 1},
		{name: "errors always fail", result: twml.LintResult{ErrorCount: 1}, code: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitStatus(&tt.result, tt.strict)
			if tt.code == 0 {
				require.NoError(t, err)
				return
			}
			var exit exitError
			require.True(t, errors.As(err, &exit))
			assert.Equal(t, tt.code, exit.code)
		})
	}
}

func TestWriteInspection(t *testing.T) {
	result := &twml.RenderResult{
		CSS:     ".p-4 { padding: 1rem; }\n",
		Classes: [][]string{{"p-4"}, nil, {"p-4", "hover:m-2"}},
	}

	tests := []struct {
		name    string
		classes bool
		want    string
	}{
		{
			name: "stylesheet only",
			want: ".p-4 { padding: 1rem; }\n",
		},
		{
			name:    "with classes",
			classes: true,
			want: "/* element 0: p-4 */\n" +
				"/* element 2: p-4 hover:m-2 */\n" +
				".p-4 { padding: 1rem; }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeInspection(&buf, result, tt.classes))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPagesOf(t *testing.T) {
	snap := &twml.Snapshot{Documents: []*twml.DocumentResult{
		{Path: "index.html", HTML: []byte("<html></html>"), CSS: ".a{}"},
		{Path: "blog/post.html", HTML: []byte("<p></p>"), CSS: ""},
	}}

	pages := pagesOf(snap)
	require.Len(t, pages.Pages, 2)
	assert.Equal(t, ".a{}", pages.Pages["index.html"].CSS)
	assert.Equal(t, "<p></p>", string(pages.Pages["blog/post.html"].HTML))
}
