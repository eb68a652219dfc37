// Package watch turns file system notifications into debounced regeneration
// triggers. Events are consumed on a single goroutine and the trigger runs
// synchronously on it, so two passes never overlap.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period that closes a burst of changes.
const DefaultDebounce = 150 * time.Millisecond

// Trigger runs one regeneration pass for the paths that changed in a burst.
type Trigger func(ctx context.Context, changed []string) error

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period after the last relevant event.
	Debounce time.Duration
	// Filter reports whether a changed path should cause a pass. Nil
	// accepts every path.
	Filter func(path string) bool
	// Logger receives watcher diagnostics. Nil discards them.
	Logger *zap.Logger
}

// Watcher schedules regeneration passes from file system events.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   <-chan fsnotify.Event
	errs     <-chan error
	debounce time.Duration
	filter   func(string) bool
	log      *zap.Logger
}

// New watches every directory below roots, skipping hidden directories
// and node_modules. Directories created later are added as they appear.
func New(roots []string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}

	w := newWatcher(fsw.Events, fsw.Errors, opts)
	w.fsw = fsw

	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func newWatcher(events <-chan fsnotify.Event, errs <-chan error, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Watcher{
		events:   events,
		errs:     errs,
		debounce: opts.Debounce,
		filter:   opts.Filter,
		log:      opts.Logger.Named("watch"),
	}
}

// Close releases the underlying notification handle.
func (w *Watcher) Close() error {
	if w.fsw == nil {
		return nil
	}
	return w.fsw.Close()
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "watch %s", path)
		}
		w.log.Debug("Watching directory", zap.String("path", path))
		return nil
	})
	return errors.Wrapf(err, "watch tree %s", root)
}

func skipDir(name string) bool {
	return name == "node_modules" || Hidden(name)
}

// Hidden reports whether a path segment names a dotfile or dot directory.
// "." and ".." are not hidden.
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Run consumes events until ctx is cancelled. Each relevant event marks the
// scheduler dirty and re-arms the debounce timer; when the timer fires the
// trigger is called once with every path changed since the last pass.
// Trigger errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, trigger Trigger) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.events:
			if !ok {
				return nil
			}
			w.maybeAddDir(event)
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("Change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.errs:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			changed := drain(pending)
			w.log.Debug("Regenerating", zap.Int("changed", len(changed)))
			if err := trigger(ctx, changed); err != nil {
				w.log.Error("Regeneration failed", zap.Error(err))
			}
		}
	}
}

func drain(pending map[string]struct{}) []string {
	changed := make([]string, 0, len(pending))
	for path := range pending {
		changed = append(changed, path)
		delete(pending, path)
	}
	sort.Strings(changed)
	return changed
}

// relevant reports whether event should schedule a pass.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if isTempFile(event.Name) {
		return false
	}
	return w.filter == nil || w.filter(event.Name)
}

func (w *Watcher) maybeAddDir(event fsnotify.Event) {
	if w.fsw == nil || !event.Op.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() || skipDir(info.Name()) {
		return
	}
	if err := w.addTree(event.Name); err != nil {
		w.log.Warn("Cannot watch new directory", zap.String("path", event.Name), zap.Error(err))
	}
}

// isTempFile matches the scratch files editors write next to the real one.
func isTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".#") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		base == "4913"
}
