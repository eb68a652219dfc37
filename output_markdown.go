package twml

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/twml/internal/report"
)

// WriteMarkdown writes the lint result as a Markdown report suitable for
// pasting into an issue or pull request.
func WriteMarkdown(w io.Writer, result *LintResult) error {
	bw := bufio.NewWriter(w)
	errors, warnings := report.CountSeverities(result.Issues)

	fmt.Fprintln(bw, "# twml report")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "**%s** (%s, %s) in %s.\n",
		report.Pluralize(len(result.Issues), "issue", "issues"),
		report.Pluralize(errors, "error", "errors"),
		report.Pluralize(warnings, "warning", "warnings"),
		report.Pluralize(result.FilesScanned, "document", "documents"))

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "## Statistics")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "| Metric | Value |")
	fmt.Fprintln(bw, "|---|---|")
	fmt.Fprintf(bw, "| Styled elements | %d |\n", result.Elements)
	fmt.Fprintf(bw, "| Rules generated | %d |\n", result.Rules)
	fmt.Fprintf(bw, "| Resolved | %d (%.1f%%) |\n", result.Resolved, result.ResolvedPercentage)
	fmt.Fprintf(bw, "| Pass-through | %d |\n", result.PassThrough)
	fmt.Fprintf(bw, "| Unrecognized | %d |\n", result.Unrecognized)
	fmt.Fprintf(bw, "| Design tokens | %d |\n", result.Tokens)

	if len(result.Categories) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Rules by category")
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "| Category | Rules | Using tokens |")
		fmt.Fprintln(bw, "|---|---|---|")
		for _, c := range result.Categories {
			fmt.Fprintf(bw, "| %s | %d | %d |\n", c.Category, c.Rules, c.Tokens)
		}
	}

	if len(result.Issues) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Issues")
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "| Location | Severity | Message |")
		fmt.Fprintln(bw, "|---|---|---|")
		for _, issue := range result.Issues {
			fmt.Fprintf(bw, "| `%s:%d:%d` | %s | %s |\n",
				issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
				issue.Severity, escapeMarkdownCell(issue.Text))
		}
		if result.TruncatedCount > 0 {
			fmt.Fprintf(bw, "\n_%s truncated._\n", report.Pluralize(result.TruncatedCount, "issue", "issues"))
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "## Warnings")
		fmt.Fprintln(bw)
		for _, warning := range result.Warnings {
			fmt.Fprintf(bw, "- %s\n", warning)
		}
	}

	return bw.Flush()
}

func escapeMarkdownCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
