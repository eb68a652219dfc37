package report

import (
	"fmt"
	"io"
	"strings"
)

// Verbose prints statistics about a lint run
type Verbose struct {
	w         io.Writer
	useColors bool
}

// NewVerbose creates a verbose reporter
func NewVerbose(w io.Writer, useColors bool) *Verbose {
	return &Verbose{
		w:         w,
		useColors: useColors,
	}
}

func (r *Verbose) heading(title string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, render(styleCyan, title, r.useColors))
	fmt.Fprintln(r.w, strings.Repeat("-", len(title)))
}

// PrintStatistics outputs document and rule counts
func (r *Verbose) PrintStatistics(result Result) {
	r.heading("Utility Statistics")

	fmt.Fprintf(r.w, "Documents Scanned:  %d\n", result.FilesScanned)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(r.w, "Documents Skipped:  %d\n", result.FilesSkipped)
	}
	if result.FilesFailed > 0 {
		fmt.Fprintf(r.w, "Documents Failed:   %s\n", render(styleRed, fmt.Sprint(result.FilesFailed), r.useColors))
	}
	fmt.Fprintf(r.w, "Styled Elements:    %d\n", result.Elements)
	fmt.Fprintf(r.w, "Rules Generated:    %d\n", result.Rules)
	fmt.Fprintf(r.w, "  Resolved:         %s\n", render(styleGreen, fmt.Sprint(result.Resolved), r.useColors))
	fmt.Fprintf(r.w, "  Pass-through:     %s\n", render(styleGray, fmt.Sprint(result.PassThrough), r.useColors))
	fmt.Fprintf(r.w, "  Unrecognized:     %s\n", render(styleYellow, fmt.Sprint(result.Unrecognized), r.useColors))
	fmt.Fprintf(r.w, "Design Tokens:      %d\n", result.Tokens)
}

// PrintResolution shows the share of rules resolved through tables,
// formulas or design tokens
func (r *Verbose) PrintResolution(result Result) {
	r.heading("Token Resolution")
	printProgressBar(r.w, result.ResolvedPercentage)
}

// PrintCategories lists rules per property category
func (r *Verbose) PrintCategories(result Result) {
	if len(result.Categories) == 0 {
		return
	}
	r.heading("Rules by Category")
	for _, c := range result.Categories {
		fmt.Fprintf(r.w, "%-12s %4d rules, %d using tokens\n", c.Category, c.Rules, c.Tokens)
	}
}

// PrintTopUnrecognized lists the most widespread unrecognized utilities
func (r *Verbose) PrintTopUnrecognized(result Result) {
	if len(result.TopUnrecognized) == 0 {
		return
	}
	r.heading("Most Common Unrecognized")
	for i, tc := range result.TopUnrecognized {
		if i >= 10 {
			break
		}
		fmt.Fprintf(r.w, "%d. %q - %s (%s)\n",
			i+1, tc.Class, Pluralize(tc.Occurrences, "document", "documents"), tc.Reason)
	}
}

// PrintWarnings shows non-fatal problems such as unreadable token files
func (r *Verbose) PrintWarnings(result Result) {
	if len(result.Warnings) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, render(styleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// PrintAll prints every statistics section.
func (r *Verbose) PrintAll(result Result) {
	r.PrintStatistics(result)
	r.PrintResolution(result)
	r.PrintCategories(result)
	r.PrintTopUnrecognized(result)
	r.PrintWarnings(result)
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
