// Package gemini asks a Gemini model to read a recipe out of page text
// It is the fallback when a page carries no structured recipe data
package gemini

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"recipescraper/internal/adapters/extract"
	"recipescraper/internal/core/normalize"
	"recipescraper/internal/core/textclean"
	"recipescraper/internal/platform/config"
	perr "recipescraper/internal/platform/errors"
	"recipescraper/internal/platform/logger"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultRetries = 2
	defaultTimeout = 60 * time.Second

	// page text beyond this many runes is cut before prompting
	maxPageRunes = 60000
)

const systemPrompt = `You extract cooking recipes from web pages and video descriptions.
Reply with a single JSON object and nothing else, using exactly these keys:
{"is_recipe": bool, "title": string, "description": string,
 "prep_time": string, "cook_time": string, "total_time": string, "yields": string,
 "ingredients": [string], "instructions": [string], "image": string}
Times are human readable durations such as "15 minutes" or ISO-8601 such as "PT15M".
yields is the number of servings as written, for example "4 servings".
List every ingredient with its quantity, one per entry, in page order.
List every instruction step, one per entry, in order, without numbering.
Use "" or [] for anything the page does not state. Do not invent steps or quantities.
If the page does not contain a recipe set is_recipe to false.`

// Generator sends one prompt to a model and returns the raw text reply
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Options configures the Client
type Options struct {
	APIKey  string
	Model   string
	Retries int
	Timeout time.Duration
	// RetryWait is the base backoff, attempt n waits n*RetryWait
	RetryWait time.Duration
}

// OptionsFrom reads GEMINI_API_KEY and GEMINI_MODEL from the unprefixed env
func OptionsFrom(cfg config.Conf) Options {
	return Options{
		APIKey:  strings.TrimSpace(cfg.MayString("GEMINI_API_KEY", "")),
		Model:   strings.TrimSpace(cfg.MayString("GEMINI_MODEL", defaultModel)),
		Retries: cfg.MayInt("GEMINI_RETRIES", defaultRetries),
		Timeout: cfg.MayDuration("GEMINI_TIMEOUT", defaultTimeout),
	}
}

// Input is what the model gets to read
type Input struct {
	URL      string
	Platform string
	Meta     extract.Meta
	// HTML is the main content fragment, it is converted to Markdown
	HTML string
}

// Client extracts recipes with a generative model
type Client struct {
	gen   Generator
	opts  Options
	log   logger.Logger
	close func() error
}

// New connects to Gemini, a missing API key yields a disabled client and no error
func New(ctx context.Context, o Options) (*Client, error) {
	o = withDefaults(o)
	c := &Client{opts: o, log: *logger.Named("gemini")}
	if o.APIKey == "" {
		return c, nil
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(o.APIKey))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "gemini client")
	}
	c.gen = &genaiGenerator{client: gc, model: o.Model}
	c.close = gc.Close
	return c, nil
}

// NewWith wraps an existing Generator, tests use it with a fake
func NewWith(gen Generator, o Options) *Client {
	return &Client{gen: gen, opts: withDefaults(o), log: *logger.Named("gemini")}
}

func withDefaults(o Options) Options {
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RetryWait <= 0 {
		o.RetryWait = 300 * time.Millisecond
	}
	return o
}

// Enabled reports whether a model is configured
func (c *Client) Enabled() bool { return c != nil && c.gen != nil }

// Model returns the configured model name
func (c *Client) Model() string { return c.opts.Model }

// Close releases the underlying client
func (c *Client) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// Extract asks the model for a recipe, a reply without one is a NoRecipe error
func (c *Client) Extract(ctx context.Context, in Input) (extract.Candidate, error) {
	if !c.Enabled() {
		return extract.Candidate{}, perr.NoRecipef("no structured recipe found and gemini is not configured")
	}

	prompt, err := buildPrompt(in)
	if err != nil {
		return extract.Candidate{}, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return extract.Candidate{}, perr.FromTransportf(ctx.Err(), "gemini extract")
			case <-time.After(time.Duration(attempt) * c.opts.RetryWait):
			}
		}

		start := time.Now()
		cctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		txt, err := c.gen.Generate(cctx, systemPrompt, prompt)
		cancel()
		if err != nil {
			var retry bool
			retry, lastErr = mapError(ctx, err)
			c.log.Warn().Err(err).Int("attempt", attempt+1).Str("url", in.URL).Msg("gemini generate failed")
			if !retry {
				return extract.Candidate{}, lastErr
			}
			continue
		}
		c.log.Debug().Str("url", in.URL).Dur("elapsed", time.Since(start)).Int("chars", len(txt)).Msg("gemini replied")
		return parseReply(txt)
	}
	return extract.Candidate{}, lastErr
}

func buildPrompt(in Input) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Source URL: %s\n", in.URL)
	if in.Platform != "" {
		fmt.Fprintf(&b, "Platform: %s\n", in.Platform)
	}
	if in.Meta.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", in.Meta.Title)
	}
	if in.Meta.Description != "" {
		fmt.Fprintf(&b, "Page description: %s\n", in.Meta.Description)
	}
	if in.Meta.Image != "" {
		fmt.Fprintf(&b, "Page image: %s\n", in.Meta.Image)
	}
	if strings.TrimSpace(in.HTML) != "" {
		md, err := htmltomarkdown.ConvertString(in.HTML)
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUpstream, "convert page to markdown")
		}
		b.WriteString("\nPage content (Markdown):\n")
		b.WriteString(truncateRunes(strings.TrimSpace(md), maxPageRunes))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// reply is the JSON object the system prompt asks for
type reply struct {
	IsRecipe     *bool           `json:"is_recipe"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PrepTime     normalize.Value `json:"prep_time"`
	CookTime     normalize.Value `json:"cook_time"`
	TotalTime    normalize.Value `json:"total_time"`
	Yields       normalize.Value `json:"yields"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Image        string          `json:"image"`
}

func parseReply(txt string) (extract.Candidate, error) {
	txt = StripCodeFences(txt)
	if txt == "" {
		return extract.Candidate{}, perr.Upstreamf("gemini: empty response")
	}
	var r reply
	if err := json.Unmarshal([]byte(txt), &r); err != nil {
		return extract.Candidate{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "gemini: bad JSON")
	}
	if r.IsRecipe != nil && !*r.IsRecipe {
		return extract.Candidate{}, perr.NoRecipef("no recipe found on the page")
	}
	c := extract.Candidate{
		Title:        textclean.Line(r.Title),
		Description:  textclean.Line(r.Description),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Yield:        r.Yields,
		Ingredients:  textclean.Lines(r.Ingredients),
		Instructions: textclean.Lines(r.Instructions),
		Image:        strings.TrimSpace(r.Image),
	}
	if !c.Complete() {
		return extract.Candidate{}, perr.NoRecipef("no recipe found on the page")
	}
	return c, nil
}

// StripCodeFences removes a surrounding markdown code fence from a model reply
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// mapError turns API and transport failures into perr codes and says whether another attempt may help
// An attempt that ran past its own timeout is retried while the caller's ctx is still live
func mapError(ctx context.Context, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, perr.FromTransportf(ctx.Err(), "gemini")
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true, perr.Wrapf(err, perr.ErrorCodeTimeout, "gemini: attempt timed out")
	}
	var ge *googleapi.Error
	if stderrs.As(err, &ge) {
		if e := perr.FromStatus(ge.Code, "gemini"); e != nil {
			return ge.Code == http.StatusTooManyRequests || ge.Code >= 500, e
		}
	}
	e := perr.FromTransportf(err, "gemini")
	return perr.IsRetryable(e), e
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
