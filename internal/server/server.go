package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves a built site directory for local preview.
type Server struct {
	router chi.Router
	dir    string
	log    *slog.Logger
}

// New creates a preview server rooted at the output directory.
func New(dir string, log *slog.Logger) *Server {
	s := &Server{dir: dir, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(NoCache)

	fs := http.FileServer(http.Dir(s.dir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		// No directory listings: a directory without an index page is a 404.
		if strings.HasSuffix(req.URL.Path, "/") {
			index := filepath.Join(s.dir, filepath.FromSlash(req.URL.Path), "index.html")
			if _, err := os.Stat(index); os.IsNotExist(err) {
				http.NotFound(w, req)
				return
			}
		}
		fs.ServeHTTP(w, req)
	})

	s.router = r
}
