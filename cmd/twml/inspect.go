package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yacobolo/twml"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the stylesheet generated for one document",
	Long: `Run one pass over FILE with the configured design tokens and print the
generated stylesheet to stdout. With --classes, also print the class list
assigned to each styled element. Nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("classes", false, "Also print the classes of each styled element")
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	fs := afero.NewOsFs()
	ws := twml.NewWorkspace(buildWorkspaceConfig(), fs, log)

	set, err := ws.LoadTokens()
	if err != nil {
		log.Sugar().Warnf("Some token stylesheets were not loaded: %v", err)
	}

	f, err := fs.Open(args[0])
	if err != nil {
		return errors.Wrapf(err, "open %s", args[0])
	}
	defer f.Close()

	result, err := twml.Render(f, io.Discard, twml.RenderOptions{
		Prefix: ws.Config().Prefix,
		Tokens: set,
		Logger: log,
	})
	if err != nil {
		return err
	}

	classes, _ := cmd.Flags().GetBool("classes")
	return writeInspection(cmd.OutOrStdout(), result, classes)
}

func writeInspection(w io.Writer, result *twml.RenderResult, withClasses bool) error {
	if withClasses {
		for i, classes := range result.Classes {
			if len(classes) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "/* element %d: %s */\n", i, strings.Join(classes, " ")); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, result.CSS)
	return err
}
