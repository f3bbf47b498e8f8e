package telegram

import (
	"time"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
	"github.com/m3rciful/specialtybot/core/telegram/middleware"
)

// DefaultMiddlewares returns recover, the rate limiter when an interval is
// configured, the update logger and update metrics, in that order.
func DefaultMiddlewares(cfg *coreconfig.Config) []Middleware {
	mws := []Middleware{{Name: "recover", Use: middleware.Recover}}
	if cfg != nil && cfg.RateLimit.IntervalMS > 0 {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use:  middleware.RateLimit(interval, cfg.RateLimit.ExcludeUpdates),
		})
	}
	return append(mws,
		Middleware{Name: "logger", Use: middleware.Logger},
		Middleware{Name: "metrics", Use: middleware.Metrics},
	)
}
