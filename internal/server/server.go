// Package server hosts the rendered documents of the latest pass and tells
// connected browsers to reload whenever a new pass is published.
package server

import (
	"context"
	"net/http"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yacobolo/twml/internal/watch"
)

const (
	// SocketPath is the websocket endpoint used for live reload.
	SocketPath = "/__twml/ws"
	// StylesheetSuffix appended to a page path serves that page's
	// generated rules as text/css.
	StylesheetSuffix = ".twml.css"

	shutdownTimeout = 5 * time.Second
)

// ReloadScript is injected into served pages. It reconnects when the
// server restarts and reloads the page on every published pass.
const ReloadScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  function connect() {
    var ws = new WebSocket(proto + location.host + "` + SocketPath + `");
    ws.onmessage = function (e) {
      try { if (JSON.parse(e.data).type === "reload") location.reload(); } catch (_) {}
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();`

// Page is one rendered document.
type Page struct {
	HTML []byte
	CSS  string
}

// Snapshot is the complete set of pages produced by one pass, keyed by
// slash-separated path relative to the root.
type Snapshot struct {
	Pages map[string]Page
}

// Server serves the current snapshot and the static files around it.
type Server struct {
	fs       afero.Fs
	root     string
	log      *zap.Logger
	snapshot atomic.Pointer[Snapshot]
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// New creates a server. Static files are read from root on fs.
func New(fs afero.Fs, root string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		fs:      fs,
		root:    root,
		log:     log.Named("server"),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
	s.snapshot.Store(&Snapshot{Pages: map[string]Page{}})
	return s
}

// Publish swaps in snap and asks every connected client to reload.
func (s *Server) Publish(snap *Snapshot) {
	if snap == nil || snap.Pages == nil {
		snap = &Snapshot{Pages: map[string]Page{}}
	}
	s.snapshot.Store(snap)
	n := s.broadcast(reloadMessage)
	s.log.Debug("Published snapshot", zap.Int("pages", len(snap.Pages)), zap.Int("clients", n))
}

// Handler routes live-reload, rendered pages, per-page stylesheets and
// static files.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SocketPath, s.serveSocket)
	mux.Handle("/", s.pageHandler(http.FileServer(afero.NewHttpFs(s.fs).Dir(s.root))))
	return mux
}

func (s *Server) pageHandler(static http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		snap := s.snapshot.Load()
		key := pageKey(r.URL.Path)

		if name, ok := strings.CutSuffix(key, StylesheetSuffix); ok {
			if page, found := lookupPage(snap, name); found {
				w.Header().Set("Content-Type", "text/css; charset=utf-8")
				w.Header().Set("Cache-Control", "no-store")
				_, _ = w.Write([]byte(page.CSS))
				return
			}
		}

		if page, found := lookupPage(snap, key); found {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
			_, _ = w.Write(page.HTML)
			return
		}

		if hiddenPath(r.URL.Path) {
			http.NotFound(w, r)
			return
		}
		static.ServeHTTP(w, r)
	})
}

// hiddenPath reports whether any segment of urlPath is hidden, so files
// such as .git/config or .twml.yaml are never served.
func hiddenPath(urlPath string) bool {
	for _, segment := range strings.Split(urlPath, "/") {
		if watch.Hidden(segment) {
			return true
		}
	}
	return false
}

// pageKey maps a URL path to a snapshot key. Directory paths map to their
// index.html.
func pageKey(urlPath string) string {
	p := path.Clean("/" + urlPath)
	if strings.HasSuffix(urlPath, "/") {
		p = path.Join(p, "index.html")
	}
	return strings.TrimPrefix(p, "/")
}

func lookupPage(snap *Snapshot, key string) (Page, bool) {
	if page, ok := snap.Pages[key]; ok {
		return page, true
	}
	if path.Ext(key) == "" {
		page, ok := snap.Pages[path.Join(key, "index.html")]
		return page, ok
	}
	return Page{}, false
}

// ListenAndServe serves Handler on addr until ctx is cancelled, then shuts
// down gracefully and disconnects every client.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Serving", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown server")
	}
	return nil
}

// ClientCount returns the number of connected live-reload clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// checkOrigin accepts same-host and origin-less requests only.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.EqualFold(host, r.Host)
}
