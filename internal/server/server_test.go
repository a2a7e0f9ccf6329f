package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pages := map[string]string{
		"index.html":           "<html><body>home</body></html>",
		"git/stash/index.html": "<html><body>stash</body></html>",
	}
	for p, body := range pages {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return dir
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(testSite(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServer_ServesPages(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "home") {
		t.Errorf("expected home page body, got %q", rec.Body.String())
	}

	rec = get(t, s, "/git/stash/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "stash") {
		t.Errorf("expected stash page body, got %q", rec.Body.String())
	}
}

func TestServer_NoCacheHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/")
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("expected no-cache header, got %q", cc)
	}
}

func TestServer_NoDirectoryListing(t *testing.T) {
	s := newTestServer(t)
	// git/ exists as a directory but has no index page.
	rec := get(t, s, "/git/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for directory without index, got %d", rec.Code)
	}
}

func TestServer_MissingPage(t *testing.T) {
	s := newTestServer(t)
	rec := get(t, s, "/nope/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
