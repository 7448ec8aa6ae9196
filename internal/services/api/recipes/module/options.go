package module

import (
	"time"

	"recipescraper/internal/platform/config"
)

// Options controls the result cache and how many scrapes run at once
type Options struct {
	CacheSize int
	CacheTTL  time.Duration

	// MaxConcurrent scrapes in flight, <= 0 disables the limit
	MaxConcurrent int
	// Backlog requests may wait up to BacklogWait for a slot before a 429
	Backlog     int
	BacklogWait time.Duration
}

// FromConfig reads the service scope (SCRAPER_): CACHE_SIZE, CACHE_TTL, MAX_CONCURRENT, BACKLOG, BACKLOG_WAIT
func FromConfig(scope config.Conf) Options {
	return Options{
		CacheSize:     scope.MayInt("CACHE_SIZE", 256),
		CacheTTL:      scope.MayDuration("CACHE_TTL", 15*time.Minute),
		MaxConcurrent: scope.MayInt("MAX_CONCURRENT", 8),
		Backlog:       scope.MayInt("BACKLOG", 32),
		BacklogWait:   scope.MayDuration("BACKLOG_WAIT", 30*time.Second),
	}
}
