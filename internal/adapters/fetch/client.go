// Package fetch downloads recipe pages and images with retries and a hard body cap
package fetch

import (
	"context"
	stderrs "errors"
	"io"
	"net/http"
	"strings"
	"time"

	perr "recipescraper/internal/platform/errors"
	"recipescraper/internal/platform/logger"
	"recipescraper/internal/platform/metrics"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 2
	defaultMaxBytes  = 8 << 20
	defaultRetryWait = 250 * time.Millisecond
	defaultRetryMax  = 2 * time.Second

	// many recipe sites serve a bot wall to unknown agents
	defaultUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// Kind labels what a fetch is for in logs and metrics
type Kind string

const (
	// KindPage is an HTML document
	KindPage Kind = "page"
	// KindImage is a recipe photo
	KindImage Kind = "image"
)

// Options configures the Client
type Options struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
	// MaxBytes caps a response body, larger bodies fail with an upstream error
	MaxBytes int64

	RetryWait    time.Duration
	RetryMaxWait time.Duration

	Metrics *metrics.Registry
}

// Result is one successful download
type Result struct {
	// URL is the final location after redirects
	URL         string
	Status      int
	ContentType string
	Body        []byte
}

// Client fetches pages and images over HTTP
type Client struct {
	http    *resty.Client
	opts    Options
	log     logger.Logger
	metrics *metrics.Registry
}

// New creates a new Client with sane defaults
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	if o.RetryWait <= 0 {
		o.RetryWait = defaultRetryWait
	}
	if o.RetryMaxWait <= 0 {
		o.RetryMaxWait = defaultRetryMax
	}

	rc := resty.New().
		SetTimeout(o.Timeout).
		SetHeader("User-Agent", o.UserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetRetryCount(o.Retries).
		SetRetryWaitTime(o.RetryWait).
		SetRetryMaxWaitTime(o.RetryMaxWait).
		SetDoNotParseResponse(true)
	rc.AddRetryCondition(retryCondition)

	return &Client{
		http:    rc,
		opts:    o,
		log:     *logger.Named("fetch"),
		metrics: o.Metrics,
	}
}

// retryCondition retries transport errors, rate limits and server errors
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !stderrs.Is(err, context.Canceled) && !stderrs.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}

// Page downloads an HTML document
func (c *Client) Page(ctx context.Context, url string) (Result, error) {
	return c.get(ctx, KindPage, url, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
}

// Image downloads an image
func (c *Client) Image(ctx context.Context, url string) (Result, error) {
	return c.get(ctx, KindImage, url, "image/avif,image/webp,image/*,*/*;q=0.8")
}

func (c *Client) get(ctx context.Context, kind Kind, url, accept string) (Result, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", accept).
		Get(url)
	if err != nil {
		c.metrics.Fetch(string(kind), 0)
		c.log.Warn().Err(err).Str("kind", string(kind)).Str("url", url).Msg("fetch transport error")
		return Result{}, perr.FromTransportf(err, "fetch %s %s", kind, url)
	}
	raw := resp.RawBody()
	defer func() {
		if raw != nil {
			_ = raw.Close()
		}
	}()

	status := resp.StatusCode()
	c.metrics.Fetch(string(kind), status)
	c.log.Debug().
		Str("kind", string(kind)).
		Str("url", url).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("fetch done")

	if err := perr.FromStatus(status, "fetch %s %s", kind, url); err != nil {
		return Result{}, perr.WithOp(err, "fetch")
	}

	body, err := readCapped(raw, c.opts.MaxBytes)
	if err != nil {
		return Result{}, perr.WithOp(perr.FromTransportf(err, "read %s %s", kind, url), "fetch")
	}

	final := url
	if rr := resp.RawResponse; rr != nil && rr.Request != nil && rr.Request.URL != nil {
		final = rr.Request.URL.String()
	}
	return Result{
		URL:         final,
		Status:      status,
		ContentType: strings.TrimSpace(resp.Header().Get("Content-Type")),
		Body:        body,
	}, nil
}

// errTooLarge marks a body over the cap
var errTooLarge = perr.Upstreamf("response body too large")

// readCapped reads at most limit bytes and fails if the body is longer
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errTooLarge
	}
	return b, nil
}
