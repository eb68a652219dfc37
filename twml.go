// Package twml generates utility CSS from declarative style attributes in
// HTML documents.
//
// An element such as
//
//	<div data-tw-p="4 md:8" data-tw-bg="primary">
//
// gets the classes "p-4 md:p-8 bg-primary", and the document gets one
// <style id="tw-generated-styles"> element holding the matching rules,
// ordered so breakpoints, pseudo-states and themes override plain rules.
//
// # Rendering
//
// Render one document:
//
//	result, err := twml.Render(r, w, twml.RenderOptions{
//		Prefix: "data-tw-",
//		Tokens: tokenSet,
//	})
//
// # Workspaces
//
// Build every document below a root, one independent pass per document:
//
//	ws := twml.NewWorkspace(twml.DefaultConfig(), afero.NewOsFs(), logger)
//	snapshot, err := ws.Build(ctx)
//
// # Linting
//
// Report tokens the engine could not make sense of:
//
//	result, err := twml.Lint(ctx, fs, twml.LintConfig{Config: cfg})
//	twml.WriteOutput(os.Stdout, result, twml.OutputIssues, lintConfig)
//
// The twml command wraps all of this with a live-reloading development
// server. See cmd/twml.
package twml
