package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	modkit "recipescraper/internal/modkit"
	kmodule "recipescraper/internal/modkit/module"
	"recipescraper/internal/platform/config"
	perr "recipescraper/internal/platform/errors"
	phttp "recipescraper/internal/platform/net/http"
	"recipescraper/internal/services/api/recipes/domain"

	"github.com/go-chi/chi/v5"
)

type stubSvc struct {
	got string
	err error
}

func (s *stubSvc) Scrape(_ context.Context, url string) (domain.Result, error) {
	s.got = url
	if s.err != nil {
		return domain.Result{}, s.err
	}
	return domain.Result{Source: "json-ld", Platform: "website", Recipe: domain.Recipe{Title: "Pie"}}, nil
}

func (s *stubSvc) Status() domain.Status { return domain.Status{GeminiConfigured: true} }

func serve(t *testing.T, m modkit.Module, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	req := httptest.NewRequest(http.MethodPost, "/recipes/scrape", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestScrapeRoute_OK(t *testing.T) {
	svc := &stubSvc{}
	m := New(modkit.Deps{}, modkit.WithPorts[any](svc))

	rec, env := serve(t, m, `{"url":"https://pie.example/r"}`)
	if rec.Code != http.StatusOK || env["success"] != true {
		t.Fatalf("status=%d env=%v", rec.Code, env)
	}
	data, _ := env["data"].(map[string]any)
	if data["source"] != "json-ld" || svc.got != "https://pie.example/r" {
		t.Fatalf("data=%v got=%q", data, svc.got)
	}
}

func TestScrapeRoute_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing url", `{}`, nil, http.StatusBadRequest},
		{"not a web url", `{"url":"mailto:a@b"}`, nil, http.StatusBadRequest},
		{"unknown field", `{"url":"https://x.example","x":1}`, nil, http.StatusBadRequest},
		{"no recipe", `{"url":"https://x.example"}`, perr.NoRecipef("none"), http.StatusUnprocessableEntity},
		{"upstream", `{"url":"https://x.example"}`, perr.Upstreamf("502"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(modkit.Deps{}, modkit.WithPorts[any](&stubSvc{err: tc.err}))
			rec, env := serve(t, m, tc.body)
			if rec.Code != tc.status || env["success"] != false {
				t.Fatalf("status=%d want %d env=%v", rec.Code, tc.status, env)
			}
		})
	}
}

func TestModule_PortsAndNames(t *testing.T) {
	m := New(modkit.Deps{}, modkit.WithPorts[any](&stubSvc{}))
	if m.Name() != "recipes" {
		t.Fatalf("name = %q", m.Name())
	}
	st, ok := kmodule.PortsOf[domain.StatusPort](m)
	if !ok || !st.Status().GeminiConfigured {
		t.Fatalf("status port not wired")
	}
	if _, ok := kmodule.PortsOf[domain.ServicePort](m); !ok {
		t.Fatalf("scraper port missing")
	}
}

func TestNew_BuildsFromConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AWS_BUCKET_NAME", "")
	m := New(modkit.Deps{Cfg: config.New()})
	st, ok := kmodule.PortsOf[domain.StatusPort](m)
	if !ok {
		t.Fatalf("status port missing")
	}
	if s := st.Status(); s.GeminiConfigured || s.StorageConfigured {
		t.Fatalf("status = %+v", s)
	}
	if c, ok := m.(interface{ Close() error }); !ok || c.Close() != nil {
		t.Fatalf("module should close cleanly")
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("SCRAPER_CACHE_SIZE", "10")
	t.Setenv("SCRAPER_CACHE_TTL", "1m")
	t.Setenv("SCRAPER_MAX_CONCURRENT", "2")
	o := FromConfig(config.New().Prefix("SCRAPER_"))
	if o.CacheSize != 10 || o.CacheTTL != time.Minute || o.MaxConcurrent != 2 {
		t.Fatalf("options = %+v", o)
	}
	if o.Backlog != 32 || o.BacklogWait != 30*time.Second {
		t.Fatalf("defaults = %+v", o)
	}
}

type blockingSvc struct {
	stubSvc
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSvc) Scrape(ctx context.Context, url string) (domain.Result, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.stubSvc.Scrape(ctx, url)
}

func TestScrapeRoute_ConcurrencyLimit(t *testing.T) {
	t.Setenv("SCRAPER_MAX_CONCURRENT", "1")
	t.Setenv("SCRAPER_BACKLOG", "0")
	t.Setenv("SCRAPER_BACKLOG_WAIT", "10ms")

	svc := &blockingSvc{entered: make(chan struct{}, 1), release: make(chan struct{})}
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithPorts[any](svc))
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/recipes/scrape", strings.NewReader(`{"url":"https://pie.example/r"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	first := make(chan int, 1)
	go func() { first <- post().Code }()
	select {
	case <-svc.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first scrape never started")
	}

	if code := post().Code; code != http.StatusTooManyRequests {
		t.Fatalf("second scrape = %d, want 429", code)
	}

	close(svc.release)
	if code := <-first; code != http.StatusOK {
		t.Fatalf("first scrape = %d", code)
	}
}
