// Package service runs the scrape pipeline: fetch, extract, model fallback, normalize, upload
package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"recipescraper/internal/adapters/extract"
	"recipescraper/internal/adapters/gemini"
	"recipescraper/internal/core/platform"
	perr "recipescraper/internal/platform/errors"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"
	"recipescraper/internal/platform/net/http/bind"
	ptime "recipescraper/internal/platform/time"
	"recipescraper/internal/services/api/recipes/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 15 * time.Minute
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.StatusPort
}

// Options control service behavior
type Options struct {
	// Fetcher is required
	Fetcher domain.PageFetcher

	// Generator and Store are optional, nil or disabled ones are skipped
	Generator domain.Generator
	Store     domain.ImageStore

	// CacheSize <= 0 turns the result cache off
	CacheSize int
	CacheTTL  time.Duration

	Metrics *metrics.Registry
}

// Svc implements the service port
type Svc struct {
	fetcher domain.PageFetcher
	gen     domain.Generator
	store   domain.ImageStore
	cache   *expirable.LRU[string, domain.Result]
	metrics *metrics.Registry
	now     func() time.Time
}

// New constructs the service
func New(opt Options) *Svc {
	if opt.Fetcher == nil {
		panic("recipes.Service requires a non nil PageFetcher")
	}
	s := &Svc{
		fetcher: opt.Fetcher,
		gen:     opt.Generator,
		store:   opt.Store,
		metrics: opt.Metrics,
		now:     time.Now,
	}
	if opt.CacheSize > 0 {
		ttl := opt.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		s.cache = expirable.NewLRU[string, domain.Result](opt.CacheSize, nil, ttl)
	}
	return s
}

// Status reports which optional collaborators are usable
func (s *Svc) Status() domain.Status {
	return domain.Status{
		GeminiConfigured:  s.gen != nil && s.gen.Enabled(),
		StorageConfigured: s.store != nil && s.store.Enabled(),
	}
}

// Scrape returns the recipe at rawURL, served from cache when fresh
func (s *Svc) Scrape(ctx context.Context, rawURL string) (domain.Result, error) {
	start := s.now()
	u := strings.TrimSpace(rawURL)
	if !bind.IsWebURL(u) {
		return domain.Result{}, perr.WithField(perr.InvalidArgf("url must be an absolute http or https URL"), "url")
	}
	plat := platform.Classify(u)
	log := logger.C(ctx).With().Str("platform", plat.String()).Logger()

	if s.cache != nil {
		if res, ok := s.cache.Get(u); ok {
			s.metrics.CacheLookup(true)
			res.Cached = true
			res.ProcessingTime = ptime.Seconds(s.now().Sub(start))
			log.Debug().Str("source", res.Source).Msg("scrape served from cache")
			return res, nil
		}
		s.metrics.CacheLookup(false)
	}

	res, err := s.scrape(ctx, u, plat)
	elapsed := s.now().Sub(start)
	s.metrics.Scrape(plat.String(), res.Source, err, elapsed)
	if err != nil {
		ev := log.Warn().Err(err).Dur("elapsed", elapsed).Uint16("code", uint16(perr.CodeOf(err)))
		if e, ok := perr.As(err); ok && e.Op() != "" {
			ev = ev.Str("op", e.Op())
		}
		ev.Msg("scrape failed")
		return domain.Result{}, err
	}
	res.ProcessingTime = ptime.Seconds(elapsed)
	log.Info().Str("source", res.Source).Dur("elapsed", elapsed).Msg("scrape done")

	if s.cache != nil {
		s.cache.Add(u, res)
	}
	return res, nil
}

func (s *Svc) scrape(ctx context.Context, u string, plat platform.Platform) (domain.Result, error) {
	page, err := s.page(ctx, u, plat)
	if err != nil {
		return domain.Result{}, err
	}

	var meta extract.Meta
	if page != nil {
		meta = page.Meta()
		if c, src, ok := page.Recipe(); ok {
			return s.finish(ctx, u, plat, src, c, meta), nil
		}
	}

	c, err := s.generate(ctx, u, plat, page, meta)
	if err != nil {
		return domain.Result{}, err
	}
	if page != nil {
		c.Image = page.Resolve(c.Image)
	}
	return s.finish(ctx, u, plat, extract.SourceGemini, c, meta), nil
}

// page fetches and parses u
// Website failures are returned, video pages are read best effort for model context
func (s *Svc) page(ctx context.Context, u string, plat platform.Platform) (*extract.Page, error) {
	res, err := s.fetcher.Page(ctx, u)
	if err != nil {
		if plat.IsVideo() {
			logger.C(ctx).Debug().Err(err).Msg("video page unavailable, model gets the url only")
			return nil, nil
		}
		return nil, err
	}
	p, err := extract.Parse(res.Body, res.URL)
	if err != nil {
		if plat.IsVideo() {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *Svc) generate(ctx context.Context, u string, plat platform.Platform, page *extract.Page, meta extract.Meta) (extract.Candidate, error) {
	if s.gen == nil || !s.gen.Enabled() {
		return extract.Candidate{}, perr.NoRecipef("no structured recipe found and gemini is not configured")
	}
	in := gemini.Input{URL: u, Platform: plat.String(), Meta: meta}
	if page != nil {
		if html, err := page.Content(); err == nil {
			in.HTML = html
		}
	}
	return s.gen.Extract(ctx, in)
}

func (s *Svc) finish(ctx context.Context, u string, plat platform.Platform, src extract.Source, c extract.Candidate, meta extract.Meta) domain.Result {
	if !bind.IsWebURL(c.Image) {
		c.Image = meta.Image
	}
	if c.Description == "" {
		c.Description = meta.Description
	}
	r := toRecipe(c, u)
	r.Image = s.image(ctx, c.Image)
	return domain.Result{Source: string(src), Platform: plat, Recipe: r}
}

// image copies src to object storage when configured, any failure keeps the source URL
func (s *Svc) image(ctx context.Context, src string) domain.Image {
	img := domain.Image{URL: src}
	if src == "" || s.store == nil || !s.store.Enabled() {
		return img
	}
	obj, err := s.store.Upload(ctx, src)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("image", src).Msg("keeping source image url")
		return img
	}
	return domain.Image{URL: obj.URL, Key: obj.Key}
}

// Host returns the hostname of raw without a leading www.
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
