package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twml.yaml config file",
	Long:  `Create a .twml.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := writeDefaultConfig(afero.NewOsFs(), defaultConfigFile, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
		return nil
	},
}

func writeDefaultConfig(fs afero.Fs, path string, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if exists && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"use --force to overwrite")
	}
	if err := afero.WriteFile(fs, path, []byte(defaultConfig), os.FileMode(0o644)); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

const defaultConfig = `# twml configuration

# Workspace
root: .
prefix: data-tw-
include:
  - "**/*.html"
exclude:
  - "node_modules/**"
tokens:                    # stylesheets providing --color-* and other custom properties
  - "**/*.css"
gitignore: true
verbose: false

# Live host
serve:
  addr: 127.0.0.1:8080
  debounce: 150ms
  live-reload: true

# Linting settings
lint:
  strict: false
  output-format: issues    # issues | summary | full | json | markdown
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
