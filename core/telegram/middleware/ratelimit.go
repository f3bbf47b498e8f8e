package middleware

import (
	"slices"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
	"github.com/m3rciful/specialtybot/core/telegram/helpers"
)

// limiter remembers when each user was last let through.
type limiter struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	seen map[int64]time.Time
}

func (l *limiter) allow(userID int64) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if last, ok := l.seen[userID]; ok && now.Sub(last) < l.interval {
		return false
	}
	if len(l.seen) >= 4096 {
		for id, last := range l.seen {
			if now.Sub(last) >= l.interval {
				delete(l.seen, id)
			}
		}
	}
	l.seen[userID] = now
	return true
}

// RateLimit drops updates that arrive less than interval after the same
// user's previous one. Update kinds listed in exclude are never limited.
// A dropped callback is still answered so the button stops spinning.
func RateLimit(interval time.Duration, exclude []string) tele.MiddlewareFunc {
	return rateLimit(&limiter{interval: interval, now: time.Now, seen: map[int64]time.Time{}}, exclude)
}

func rateLimit(l *limiter, exclude []string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || l.interval <= 0 || slices.Contains(exclude, UpdateKind(c.Update())) {
				return next(c)
			}
			if l.allow(user.ID) {
				return next(c)
			}
			metrics.ObserveRateLimited()
			logger.Warn(helpers.BuildContext(c), component, "tg.rate_limited")
			if c.Callback() != nil {
				_ = c.Respond()
			}
			return nil
		}
	}
}
