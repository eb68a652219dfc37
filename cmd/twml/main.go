// Package main is the twml command line tool: it renders data-tw-*
// attributes into per-document stylesheets and serves them live.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// exitError ends the process with a status code without printing anything,
// for commands whose output already explains the failure.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
