package twml

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yacobolo/twml/internal/engine"
	"github.com/yacobolo/twml/internal/report"
)

// LintConfig holds linting configuration
type LintConfig struct {
	Config

	Strict bool // Exit with code 1 on any issue, not only errors

	// golangci-style configuration
	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (twml) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult = report.Result

// TokenCount is an unrecognized class and how many documents use it.
type TokenCount = report.TokenCount

// Lint renders every document of the workspace without serving it and
// reports tokens the engine could not make sense of. Each unrecognized class
// is reported once per document, at its first occurrence.
func Lint(ctx context.Context, fsys afero.Fs, config LintConfig, log *zap.Logger) (*LintResult, error) {
	ws := NewWorkspace(config.Config, fsys, log)
	snap, err := ws.Build(ctx, BuildOptions{})
	if snap == nil {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	displayRoot := config.Root
	if displayRoot == "" {
		displayRoot = "."
	}
	display := func(path string) string {
		return filepath.ToSlash(filepath.Join(displayRoot, filepath.FromSlash(path)))
	}

	result := &LintResult{
		FilesScanned: snap.Stats.FilesScanned,
		FilesSkipped: snap.Stats.FilesSkipped,
		FilesFailed:  len(snap.Failures),
		Tokens:       snap.Tokens.Len(),
	}
	for _, tokErr := range snap.TokenErrors {
		result.Warnings = append(result.Warnings, tokErr.Error())
	}

	var allRules []engine.Rule
	unrecognized := make(map[string]*TokenCount)
	prefix := ws.Config().Prefix

	for _, doc := range snap.Documents {
		source := string(doc.Source)
		for _, classes := range doc.Classes {
			if len(classes) > 0 {
				result.Elements++
			}
		}
		for _, rule := range doc.Rules {
			switch rule.Resolution {
			case engine.Resolved:
				result.Resolved++
			case engine.PassThrough:
				result.PassThrough++
			default:
				result.Unrecognized++
			}
		}
		result.Rules += len(doc.Rules)
		allRules = append(allRules, doc.Rules...)

		for _, d := range doc.Diagnostics {
			line, col, text := locateToken(source, prefix+d.Attribute, d.Token)
			issue := Issue{
				FromLinter: LinterName,
				Text:       fmt.Sprintf(IssueUnrecognized, d.Class, d.Reason),
				Severity:   SeverityWarning,
				Pos:        IssuePos{Filename: display(doc.Path), Line: line, Column: col},
			}
			if text != "" {
				issue.SourceLines = []string{text}
			}
			result.Issues = append(result.Issues, issue)

			tc, ok := unrecognized[d.Class]
			if !ok {
				tc = &TokenCount{Class: d.Class, Reason: d.Reason}
				unrecognized[d.Class] = tc
			}
			tc.Occurrences++
		}
	}

	for _, f := range snap.Failures {
		result.ErrorCount++
		result.Issues = append(result.Issues, Issue{
			FromLinter: LinterName,
			Text:       fmt.Sprintf(IssueUnreadable, f.Err),
			Severity:   SeverityError,
			Pos:        IssuePos{Filename: display(f.Path), Line: 1, Column: 1},
		})
	}

	if result.Rules > 0 {
		result.ResolvedPercentage = float64(result.Resolved) / float64(result.Rules) * 100
	}
	result.Categories = engine.Categorize(allRules)
	result.TopUnrecognized = sortByOccurrences(unrecognized)

	report.SortIssues(result.Issues)
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}
	return result, nil
}

// locateToken finds the 1-based line and column of token inside the value
// of the first attribute named attr that contains it. When the token
// cannot be found the attribute itself is reported, and failing that
// line 1, column 0.
func locateToken(source, attr, token string) (line, col int, text string) {
	lower := asciiLower(source)
	needle := asciiLower(attr) + "="

	firstAttr := -1
	for start := 0; ; {
		i := strings.Index(lower[start:], needle)
		if i < 0 {
			break
		}
		at := start + i
		start = at + len(needle)
		if at > 0 && !isAttrBoundary(source[at-1]) {
			continue
		}
		if firstAttr < 0 {
			firstAttr = at
		}

		value, offset := attrValue(source, start)
		if idx := indexField(value, token); idx >= 0 {
			return position(source, offset+idx)
		}
	}

	if firstAttr >= 0 {
		return position(source, firstAttr)
	}
	return 1, 0, ""
}

// asciiLower lowercases ASCII letters only so byte offsets stay aligned
// with the original text.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func isAttrBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '"' || b == '\''
}

// attrValue returns the attribute value starting at pos (just after '=')
// and the offset of its first byte in source.
func attrValue(source string, pos int) (string, int) {
	if pos >= len(source) {
		return "", pos
	}
	quote := source[pos]
	if quote == '"' || quote == '\'' {
		end := strings.IndexByte(source[pos+1:], quote)
		if end < 0 {
			return source[pos+1:], pos + 1
		}
		return source[pos+1 : pos+1+end], pos + 1
	}
	end := strings.IndexAny(source[pos:], " \t\n\r\f>")
	if end < 0 {
		return source[pos:], pos
	}
	return source[pos : pos+end], pos
}

// indexField returns the byte index of token in s where it appears as a
// whole whitespace-separated field, or -1.
func indexField(s, token string) int {
	if token == "" {
		return -1
	}
	for start := 0; ; {
		i := strings.Index(s[start:], token)
		if i < 0 {
			return -1
		}
		at := start + i
		end := at + len(token)
		before := at == 0 || isSpace(s[at-1])
		after := end == len(s) || isSpace(s[end])
		if before && after {
			return at
		}
		start = at + 1
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func position(source string, offset int) (line, col int, text string) {
	line = strings.Count(source[:offset], "\n") + 1
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	lineEnd := strings.IndexByte(source[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += offset
	}
	text = strings.TrimRight(source[lineStart:lineEnd], "\r")
	return line, offset - lineStart + 1, text
}

func sortByOccurrences(counts map[string]*TokenCount) []TokenCount {
	out := make([]TokenCount, 0, len(counts))
	for _, tc := range counts {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Class < out[j].Class
	})
	return out
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	// max-same-issues dedupes by message text
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
