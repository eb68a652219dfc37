// Package report formats lint results for terminals: golangci-style issue
// lines, a summary and verbose statistics.
package report

import (
	"fmt"
	"sort"
)

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "twml"
	Text        string     `json:"Text"`        // "unrecognized utility \"colour-red\": unknown property \"colour\""
	Severity    string     `json:"Severity"`    // "", "warning", "error"
	SourceLines []string   `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Optional range
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "pages/index.html"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, start of the offending token)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// LinterName is reported as FromLinter on every issue.
const LinterName = "twml"

// SortIssues orders issues by file, line and column. Equal positions keep
// their order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// CountSeverities counts error and warning issues.
func CountSeverities(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Pluralize returns a formatted string with count and singular/plural form
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
