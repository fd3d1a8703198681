// Package site serves the events website with its event containers filled
// on every request.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/okian/eventboard/internal/adapters/page"
	"github.com/okian/eventboard/pkg/logger"
)

// IndexPage is served for directory requests.
const IndexPage = "index.html"

// PageRenderer fills the event containers of an HTML page.
type PageRenderer interface {
	RenderPage(ctx context.Context, r io.Reader, w io.Writer) (page.Mode, error)
}

// Handler serves HTML pages through a PageRenderer and every other file as is.
type Handler struct {
	files  fs.FS
	pages  PageRenderer
	assets http.Handler
	logger logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithFS serves the site from files instead of the embedded sample site.
func WithFS(files fs.FS) Option {
	return func(h *Handler) {
		if files != nil {
			h.files = files
		}
	}
}

// NewHandler creates a site handler backed by pages.
func NewHandler(pages PageRenderer, opts ...Option) *Handler {
	h := &Handler{
		files:  FS(),
		pages:  pages,
		logger: logger.Named("site"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.assets = http.FileServer(http.FS(h.files))
	return h
}

// Register attaches the site at the root of mux.
func Register(_ context.Context, mux *http.ServeMux, pages PageRenderer, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewHandler(pages, opts...))
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || strings.HasSuffix(r.URL.Path, "/") {
		name = path.Join(name, IndexPage)
	}
	if !strings.HasSuffix(name, ".html") {
		h.assets.ServeHTTP(w, r)
		return
	}

	if err := h.servePage(w, r, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error(r.Context(), "failed to render page",
			logger.String("page", name),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, name string) error {
	src, err := h.files.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	var buf bytes.Buffer
	mode, err := h.pages.RenderPage(r.Context(), src, &buf)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrServe, name, err)
	}

	h.logger.Debug(r.Context(), "page served",
		logger.String("page", name),
		logger.String("mode", string(mode)),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, _ = buf.WriteTo(w)
	return nil
}
