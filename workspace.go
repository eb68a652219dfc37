package twml

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/twml/internal/engine"
	"github.com/yacobolo/twml/internal/tokens"
)

// Workspace is a set of documents under one root that are rendered
// together.
type Workspace struct {
	cfg     Config
	fs      afero.Fs
	log     *zap.Logger
	scanner *scanner
	parser  *tokens.Parser
}

// NewWorkspace creates a workspace over fsys. A nil logger discards output.
func NewWorkspace(cfg Config, fsys afero.Fs, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}
	return &Workspace{
		cfg:     cfg,
		fs:      fsys,
		log:     log.Named("workspace"),
		scanner: newScanner(fsys, cfg.Root, cfg.RespectGitignore),
		parser:  tokens.NewParser(log),
	}
}

// Config returns the effective configuration, with Root made absolute.
func (w *Workspace) Config() Config {
	return w.cfg
}

// Discover lists the documents of the workspace, relative to the root.
func (w *Workspace) Discover() ([]string, ScanStats, error) {
	files, stats, err := w.scanner.scan(w.cfg.Include, w.cfg.Exclude)
	if err != nil {
		return nil, stats, errors.Wrap(err, "discover documents")
	}
	w.log.Debug("Discovered documents",
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))
	return files, stats, nil
}

// LoadTokens parses every token stylesheet. Files that cannot be read are
// reported in the returned error; the set holds whatever could be loaded.
func (w *Workspace) LoadTokens() (*tokens.Set, error) {
	if len(w.cfg.Tokens) == 0 {
		return tokens.NewSet(), nil
	}
	files, _, err := w.scanner.scan(w.cfg.Tokens, w.cfg.Exclude)
	if err != nil {
		return tokens.NewSet(), errors.Wrap(err, "discover token stylesheets")
	}

	var errs error
	sets := make([]*tokens.Set, 0, len(files))
	for _, file := range files {
		data, err := w.scanner.readFile(file)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		sets = append(sets, w.parser.Parse(data, file))
	}
	set := tokens.Merge(sets...)
	w.log.Debug("Loaded design tokens", zap.Int("files", len(files)), zap.Int("properties", set.Len()))
	return set, errs
}

// DocumentResult is one rendered document of a snapshot.
type DocumentResult struct {
	Path        string // relative to the workspace root, slash-separated
	Source      []byte
	HTML        []byte
	CSS         string
	Classes     [][]string
	Rules       []engine.Rule
	Diagnostics []engine.Diagnostic
}

// Failure records a document that could not be rendered.
type Failure struct {
	Path string
	Err  error
}

// Snapshot is the result of rendering every document of a workspace once.
type Snapshot struct {
	Documents   []*DocumentResult
	Failures    []Failure
	Tokens      *tokens.Set
	TokenErrors []error // token stylesheets that could not be read
	Stats       ScanStats
	Duration    time.Duration
}

// Document returns the rendered document at path.
func (s *Snapshot) Document(path string) (*DocumentResult, bool) {
	for _, d := range s.Documents {
		if d.Path == path {
			return d, true
		}
	}
	return nil, false
}

// BuildOptions adjusts a workspace build.
type BuildOptions struct {
	// Script is injected into every rendered document when set.
	Script string
}

// Build runs one independent pass per document. A document that fails does
// not stop the others: failures are listed in the snapshot and returned
// together as the error. Cancelling ctx stops between documents.
func (w *Workspace) Build(ctx context.Context, opts BuildOptions) (*Snapshot, error) {
	start := time.Now()

	paths, stats, err := w.Discover()
	if err != nil {
		return nil, err
	}

	set, errs := w.LoadTokens()
	snap := &Snapshot{Tokens: set, TokenErrors: multierr.Errors(errs), Stats: stats}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return snap, multierr.Append(errs, err)
		}

		doc, err := w.buildDocument(path, set, opts)
		if err != nil {
			snap.Failures = append(snap.Failures, Failure{Path: path, Err: err})
			errs = multierr.Append(errs, err)
			w.log.Warn("Document failed", zap.String("path", path), zap.Error(err))
			continue
		}
		snap.Documents = append(snap.Documents, doc)
	}

	snap.Duration = time.Since(start)
	w.log.Debug("Built workspace",
		zap.Int("documents", len(snap.Documents)),
		zap.Int("failures", len(snap.Failures)),
		zap.Duration("took", snap.Duration))
	return snap, errs
}

func (w *Workspace) buildDocument(path string, set *tokens.Set, opts BuildOptions) (*DocumentResult, error) {
	source, err := w.scanner.readFile(path)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	result, err := Render(bytes.NewReader(source), &out, RenderOptions{
		Prefix: w.cfg.Prefix,
		Tokens: set,
		Script: opts.Script,
		Logger: w.log.With(zap.String("path", path)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "render %s", path)
	}

	return &DocumentResult{
		Path:        path,
		Source:      source,
		HTML:        out.Bytes(),
		CSS:         result.CSS,
		Classes:     result.Classes,
		Rules:       result.Rules,
		Diagnostics: result.Diagnostics,
	}, nil
}

// Relevant reports whether a changed file can affect the workspace output:
// a document, a token stylesheet or the .gitignore. path may be absolute.
func (w *Workspace) Relevant(path string) bool {
	rel, err := filepath.Rel(w.cfg.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	if rel == ".gitignore" {
		return true
	}
	for _, patterns := range [][]string{w.cfg.Include, w.cfg.Tokens} {
		for _, pattern := range patterns {
			if ok, _ := matchPattern(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}
