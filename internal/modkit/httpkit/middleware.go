package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"recipescraper/internal/platform/net/middleware"
)

// DefaultTimeout bounds a request when StackOptions.Timeout is unset
const DefaultTimeout = 30 * time.Second

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout time.Duration
	// Slow marks access log lines at warn level, zero disables
	Slow time.Duration
	// Extra runs innermost, after the baseline
	Extra []func(http.Handler) http.Handler
}

// CommonStack is the middleware every API route runs behind, outermost first
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return append([]func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		// browser frontends call from other origins
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"*"}}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}, o.Extra...)
}
