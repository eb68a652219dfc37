package twml

import (
	"io"

	"github.com/cockroachdb/errors"

	"github.com/yacobolo/twml/internal/report"
)

// DetermineOutputFormat selects the output format from the --output-format
// flag. Quiet mode and unknown values fall back to issues only, like
// golangci-lint.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	default:
		return OutputIssues
	}
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config LintConfig) error {
	switch format {
	case OutputSummary:
		report.NewVerbose(w, report.ShouldUseColors(config.UseColors)).PrintAll(*result)

	case OutputFull:
		reporter := newReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		report.NewVerbose(w, reporter.UseColors()).PrintAll(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return errors.Wrap(err, "write json report")
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			return errors.Wrap(err, "write markdown report")
		}

	default:
		reporter := newReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
	}
	return nil
}

func newReporter(w io.Writer, config LintConfig) *report.Reporter {
	return report.New(w, report.Options{
		UseColors:       config.UseColors,
		PrintLines:      config.PrintIssuedLines,
		PrintLinterName: config.PrintLinterName,
	})
}
