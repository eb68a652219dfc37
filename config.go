package twml

import "github.com/yacobolo/twml/internal/document"

// Config describes a workspace of documents.
type Config struct {
	Root             string   // directory holding the documents
	Prefix           string   // attribute prefix, "data-tw-" by default
	Include          []string // document globs relative to Root
	Exclude          []string // globs removed from the include set
	Tokens           []string // stylesheet globs providing design tokens
	RespectGitignore bool     // skip documents matched by Root/.gitignore
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Root:             ".",
		Prefix:           document.DefaultPrefix,
		Include:          []string{"**/*.html"},
		Exclude:          []string{"node_modules/**"},
		Tokens:           []string{"**/*.css"},
		RespectGitignore: true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.Prefix == "" {
		c.Prefix = d.Prefix
	}
	if len(c.Include) == 0 {
		c.Include = d.Include
	}
	return c
}

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues plus statistics (interactive development)
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
