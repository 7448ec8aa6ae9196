package fetch

import "recipescraper/internal/platform/config"

// OptionsFrom reads FETCH_* keys under cfg (usually the SCRAPER_ scope)
func OptionsFrom(cfg config.Conf) Options {
	c := cfg.Prefix("FETCH_")
	return Options{
		Timeout:   c.MayDuration("TIMEOUT", defaultTimeout),
		Retries:   c.MayInt("RETRIES", defaultRetries),
		UserAgent: c.MayString("USER_AGENT", defaultUA),
		MaxBytes:  int64(c.MayInt("MAX_BYTES", defaultMaxBytes)),
	}
}
