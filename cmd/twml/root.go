package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twml",
	Short: "Utility attributes to per-document CSS, live",
	Long: `twml turns data-tw-* attributes on HTML elements into utility classes and
one generated stylesheet per document, resolved against your design tokens.
Rendering happens in memory: the serve command hosts the result and reloads
the browser whenever a document or token stylesheet changes.`,
	// Default behavior: serve when no subcommand is given.
	// loadConfig runs here because PreRunE of serveCmd is not triggered
	// when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runServe(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", ".twml.yaml", "Config file path")
	pf.String("root", ".", "Directory holding the documents")
	pf.String("prefix", "data-tw-", "Attribute prefix")
	pf.StringSlice("include", nil, "Document glob patterns (default **/*.html)")
	pf.StringSlice("exclude", nil, "Glob patterns removed from the include set")
	pf.StringSlice("tokens", nil, "Stylesheet glob patterns providing design tokens (default **/*.css)")
	pf.Bool("gitignore", true, "Skip documents matched by the root .gitignore")

	// The serve flags also belong to the root command, which serves by default.
	addServeFlags(rootCmd.Flags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
