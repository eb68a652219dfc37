package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/twml"
	"github.com/yacobolo/twml/internal/server"
	"github.com/yacobolo/twml/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render documents in memory and serve them with live reload",
	Long: `Render every document once, serve the result over HTTP and re-render
whenever a document, a token stylesheet or the .gitignore changes.
Generated CSS is never written to disk: each page gets its stylesheet
injected into <head>, and /<page>.twml.css shows it on its own.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd.Flags())
}

func addServeFlags(f *pflag.FlagSet) {
	f.String("addr", defaultAddr, "Address to listen on")
	f.Duration("debounce", watch.DefaultDebounce, "Quiet period after the last change before re-rendering")
	f.Bool("live-reload", true, "Inject the live-reload script into served pages")
}

func runServe(cmd *cobra.Command, _ []string) error {
	log := loggerFromConfig()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := buildServeSettings()
	fs := afero.NewOsFs()
	ws := twml.NewWorkspace(buildWorkspaceConfig(), fs, log)
	root := ws.Config().Root
	srv := server.New(fs, root, log)

	opts := twml.BuildOptions{}
	if settings.LiveReload {
		opts.Script = server.ReloadScript
	}

	snap, err := publish(ctx, ws, srv, opts, log)
	if snap == nil {
		return err
	}

	watcher, err := watch.New([]string{root}, watch.Options{
		Debounce: settings.Debounce,
		Filter:   ws.Relevant,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, settings.Addr)
	})
	g.Go(func() error {
		return watcher.Run(ctx, func(ctx context.Context, changed []string) error {
			log.Info("Re-rendering", zap.Strings("changed", changed))
			_, err := publish(ctx, ws, srv, opts, log)
			return err
		})
	})
	return g.Wait()
}

// publish builds the workspace and hands the result to the server. Pages
// that fail to render are logged; the rest are still served.
func publish(ctx context.Context, ws *twml.Workspace, srv *server.Server, opts twml.BuildOptions, log *zap.Logger) (*twml.Snapshot, error) {
	snap, err := ws.Build(ctx, opts)
	if snap == nil {
		return nil, err
	}

	srv.Publish(pagesOf(snap))
	log.Info("Rendered documents",
		zap.Int("documents", len(snap.Documents)),
		zap.Int("tokens", snap.Tokens.Len()),
		zap.Duration("took", snap.Duration))
	for _, f := range snap.Failures {
		log.Warn("Document not rendered", zap.String("path", f.Path), zap.Error(f.Err))
	}
	for _, tokErr := range snap.TokenErrors {
		log.Warn("Token stylesheet not loaded", zap.Error(tokErr))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return snap, ctxErr
	}
	return snap, nil
}

func pagesOf(snap *twml.Snapshot) *server.Snapshot {
	pages := make(map[string]server.Page, len(snap.Documents))
	for _, doc := range snap.Documents {
		pages[doc.Path] = server.Page{HTML: doc.HTML, CSS: doc.CSS}
	}
	return &server.Snapshot{Pages: pages}
}
