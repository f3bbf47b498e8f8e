// Package middleware holds the telebot middlewares every bot installs.
package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
	"github.com/m3rciful/specialtybot/core/telegram/callbacks"
	"github.com/m3rciful/specialtybot/core/telegram/helpers"
)

const component = "tg"

// Recover converts a handler panic into an error and logs the stack.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(helpers.BuildContext(c), component, "tg.panic",
					slog.String("err", fmt.Sprint(r)),
					slog.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("telegram: handler panic: %v", r)
			}
		}()
		return next(c)
	}
}

// Logger attaches the request context to c and logs the update at debug level.
func Logger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.BuildContext(c)
		upd := c.Update()
		attrs := []slog.Attr{slog.String("kind", UpdateKind(upd))}
		switch {
		case upd.Callback != nil:
			unique, payload := callbacks.Split(upd.Callback)
			attrs = append(attrs,
				slog.String("unique", logger.SanitizeLimit(unique, 64)),
				slog.String("token", logger.SanitizeLimit(payload, 64)),
			)
		case upd.Message != nil:
			attrs = append(attrs, slog.String("text", logger.SanitizeLimit(upd.Message.Text, 128)))
		}
		logger.Debug(ctx, component, "update.received", attrs...)
		return next(c)
	}
}

// Metrics counts updates by kind.
func Metrics(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		metrics.ObserveUpdate(UpdateKind(c.Update()))
		return next(c)
	}
}

// UpdateKind names upd the way rate_limit.exclude_updates does.
func UpdateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	case upd.Query != nil:
		return "inline_query"
	default:
		return "other"
	}
}

// AdminOnly passes updates from adminID to next and the rest to reject.
// A zero adminID rejects everyone.
func AdminOnly(adminID int64, reject tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if IsAdmin(c.Sender(), adminID) {
				return next(c)
			}
			logger.Warn(helpers.BuildContext(c), component, "admin.rejected")
			if reject == nil {
				return nil
			}
			return reject(c)
		}
	}
}

func IsAdmin(user *tele.User, adminID int64) bool {
	return adminID != 0 && user != nil && user.ID == adminID
}
