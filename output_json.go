package twml

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/twml/internal/report"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version      string             `json:"version"`
	Timestamp    string             `json:"timestamp"`
	Summary      JSONSummary        `json:"summary"`
	Stats        JSONStats          `json:"stats"`
	Categories   []JSONCategory     `json:"categories"`
	Issues       []JSONIssue        `json:"issues"`
	Unrecognized []JSONUnrecognized `json:"unrecognized"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains rule generation statistics
type JSONStats struct {
	Elements           int     `json:"elements"`
	Rules              int     `json:"rules"`
	Resolved           int     `json:"resolved"`
	PassThrough        int     `json:"pass_through"`
	Unrecognized       int     `json:"unrecognized"`
	ResolvedPercentage float64 `json:"resolved_percentage"`
	Tokens             int     `json:"tokens"`
}

// JSONCategory counts rules in one property category
type JSONCategory struct {
	Category string `json:"category"`
	Rules    int    `json:"rules"`
	Tokens   int    `json:"tokens"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// JSONUnrecognized is an unrecognized utility and its document count
type JSONUnrecognized struct {
	Class       string `json:"class"`
	Reason      string `json:"reason"`
	Occurrences int    `json:"occurrences"`
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result *LintResult) JSONOutput {
	errors, warnings := report.CountSeverities(result.Issues)

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	categories := make([]JSONCategory, len(result.Categories))
	for i, c := range result.Categories {
		categories[i] = JSONCategory{Category: string(c.Category), Rules: c.Rules, Tokens: c.Tokens}
	}

	unrecognized := make([]JSONUnrecognized, len(result.TopUnrecognized))
	for i, tc := range result.TopUnrecognized {
		unrecognized[i] = JSONUnrecognized{Class: tc.Class, Reason: tc.Reason, Occurrences: tc.Occurrences}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			Elements:           result.Elements,
			Rules:              result.Rules,
			Resolved:           result.Resolved,
			PassThrough:        result.PassThrough,
			Unrecognized:       result.Unrecognized,
			ResolvedPercentage: result.ResolvedPercentage,
			Tokens:             result.Tokens,
		},
		Categories:   categories,
		Issues:       issues,
		Unrecognized: unrecognized,
		Warnings:     result.Warnings,
	}
}
