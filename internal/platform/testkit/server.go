package testkit

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// Page is a canned response served by Site
type Page struct {
	Status      int
	ContentType string
	Body        string
}

// Site is an httptest server that serves canned pages by path and counts hits
type Site struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits reports how many requests the site has served
func (s *Site) Hits() int64 { return s.hits.Load() }

// Link joins the server base URL with path
func (s *Site) Link(path string) string { return s.Server.URL + path }

// NewSite starts a Site; unknown paths answer 404. The server closes with the test
func NewSite(t *testing.T, pages map[string]Page) *Site {
	t.Helper()
	s := &Site{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		p, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		ct := p.ContentType
		if ct == "" {
			ct = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", ct)
		st := p.Status
		if st == 0 {
			st = http.StatusOK
		}
		w.WriteHeader(st)
		_, _ = w.Write([]byte(p.Body))
	}))
	t.Cleanup(s.Close)
	return s
}

// Fixture reads testdata/<name> relative to the calling package
func Fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(b)
}
