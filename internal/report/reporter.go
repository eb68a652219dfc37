package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
)

// Options controls how issues are printed.
type Options struct {
	UseColors       bool // Force colors; otherwise auto-detected
	PrintLines      bool
	PrintLinterName bool
}

// Reporter handles formatting and outputting linting results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// New creates a new reporter with the given options
func New(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts.UseColors),
		printLines:      opts.PrintLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	// CI systems that render ANSI colors
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// PrintIssues outputs issues in golangci-lint format, sorted by position
func (r *Reporter) PrintIssues(issues []Issue) {
	SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue as "file:line:col: message (linter)"
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == SeverityError {
		text = render(styleRed, text, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		render(styleCyan, location, r.useColors),
		text,
		render(styleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", render(styleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// copying tabs from the source line so the caret lines up.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result Result) {
	totalIssues := len(result.Issues)
	errors, warnings := CountSeverities(result.Issues)

	fmt.Fprintln(r.w, "")

	header := Pluralize(totalIssues, "issue", "issues")
	var details []string
	if errors > 0 && warnings > 0 {
		details = append(details,
			Pluralize(errors, "error", "errors"),
			Pluralize(warnings, "warning", "warnings"))
	}
	if result.TruncatedCount > 0 {
		details = append(details, Pluralize(result.TruncatedCount, "issue", "issues")+" truncated")
	}
	if len(details) > 0 {
		header += " (" + strings.Join(details, ", ") + ")"
	}
	fmt.Fprintf(r.w, "%s:\n", header)

	linterCounts := make(map[string]int)
	for _, issue := range result.Issues {
		linterCounts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(linterCounts))
	for linter := range linterCounts {
		linters = append(linters, linter)
	}
	sort.Strings(linters)
	for _, linter := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", linter, linterCounts[linter])
	}

	if totalIssues > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, render(styleGray, "Hint: Run with --output-format full to see statistics", r.useColors))
	}
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
