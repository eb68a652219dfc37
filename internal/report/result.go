package report

import "github.com/yacobolo/twml/internal/engine"

// Result contains linting analysis results
type Result struct {
	// Issues in golangci-lint format
	Issues []Issue

	// Statistics
	FilesScanned       int
	FilesSkipped       int
	FilesFailed        int
	Elements           int // Styled elements processed
	Rules              int // Rules generated across all documents
	Resolved           int
	PassThrough        int
	Unrecognized       int
	ResolvedPercentage float64
	Tokens             int // Design tokens available to every document
	Categories         []engine.CategoryStats
	TopUnrecognized    []TokenCount

	ErrorCount     int // Documents that could not be rendered
	TruncatedCount int // Issues removed due to limits

	Warnings []string
}

// TokenCount is an unrecognized class and how many documents use it.
type TokenCount struct {
	Class       string
	Reason      string
	Occurrences int
}

// HasErrors reports whether any document failed to render.
func (r *Result) HasErrors() bool {
	return r.ErrorCount > 0
}
