// Package metrics owns the process Prometheus registry and the collectors the service reports into
// All Registry methods are nil safe so callers can run without metrics (tests, the CLI)
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipescraper"

// Registry bundles a private prometheus registry with our collectors
type Registry struct {
	reg *prom.Registry

	httpRequests *prom.CounterVec
	httpDuration *prom.HistogramVec

	scrapes        *prom.CounterVec
	scrapeDuration *prom.HistogramVec
	fetches        *prom.CounterVec
	cache          *prom.CounterVec
	uploads        *prom.CounterVec
}

// New builds a Registry with Go runtime and process collectors attached
func New() *Registry {
	reg := prom.NewRegistry()
	r := &Registry{
		reg: reg,
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prom.DefBuckets,
		}, []string{"route", "method"}),
		scrapes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Name: "scrapes_total",
			Help: "Scrape attempts by platform, winning source and outcome",
		}, []string{"platform", "source", "outcome"}),
		scrapeDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace, Name: "scrape_duration_seconds",
			Help:    "End to end scrape latency by platform",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"platform"}),
		fetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Name: "fetches_total",
			Help: "Outbound page and image fetches by kind and status class",
		}, []string{"kind", "status"}),
		cache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Name: "cache_lookups_total",
			Help: "Scrape result cache lookups by result",
		}, []string{"result"}),
		uploads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace, Name: "image_uploads_total",
			Help: "Image uploads to object storage by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests, r.httpDuration,
		r.scrapes, r.scrapeDuration,
		r.fetches, r.cache, r.uploads,
	)
	return r
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prom.Gatherer {
	if r == nil {
		return prom.NewRegistry()
	}
	return r.reg
}

// Handler serves the text exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Gatherer(), promhttp.HandlerOpts{})
}

// Middleware records request count and latency labelled by the chi route pattern
// Unmatched requests are labelled "unmatched" to keep cardinality bounded
func (r *Registry) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if r == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, req)

			route := "unmatched"
			if rc := chi.RouteContext(req.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			r.httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(sw.status)).Inc()
			r.httpDuration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// Scrape records one finished scrape; source is empty on failure
func (r *Registry) Scrape(platform, source string, err error, d time.Duration) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		source = "none"
	}
	r.scrapes.WithLabelValues(platform, source, outcome).Inc()
	r.scrapeDuration.WithLabelValues(platform).Observe(d.Seconds())
}

// Fetch records an outbound fetch; status 0 means a transport failure
func (r *Registry) Fetch(kind string, status int) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(kind, statusClass(status)).Inc()
}

// CacheLookup records a result cache hit or miss
func (r *Registry) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	if hit {
		r.cache.WithLabelValues("hit").Inc()
		return
	}
	r.cache.WithLabelValues("miss").Inc()
}

// Upload records an image upload outcome
func (r *Registry) Upload(err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.uploads.WithLabelValues("error").Inc()
		return
	}
	r.uploads.WithLabelValues("ok").Inc()
}

func statusClass(status int) string {
	switch {
	case status <= 0:
		return "error"
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
