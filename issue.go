package twml

import "github.com/yacobolo/twml/internal/report"

// Issue represents a single linting violation in golangci-lint format.
type Issue = report.Issue

// IssuePos specifies the exact location of an issue.
type IssuePos = report.IssuePos

// LineRange specifies a range of lines.
type LineRange = report.LineRange

// IssueSeverity constants
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
	SeverityInfo    = report.SeverityInfo
)

// LinterName is reported as FromLinter on every issue.
const LinterName = report.LinterName

// Issue message formats
const (
	IssueUnrecognized = "unrecognized utility %q: %s"
	IssueUnreadable   = "document could not be rendered: %v"
)
