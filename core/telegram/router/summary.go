package router

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
	"github.com/m3rciful/specialtybot/core/telegram/helpers"
)

// summarized wraps h so each run is timed, logged and counted under name.
// A nil h is logged as skipped.
func summarized(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.WithHandler(c, name)
		start := time.Now()
		if h == nil {
			logger.Debug(ctx, "tg", "handler.handled", slog.String("status", "skip"))
			return nil
		}

		err := h(c)
		took := time.Since(start)
		outcome := "ok"
		attrs := []slog.Attr{slog.Duration("duration", took)}
		if err != nil {
			outcome = "fail"
			attrs = append(attrs,
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				slog.String("err_code", errorCode(err)),
			)
		}
		metrics.ObserveHandler(name, outcome, took)
		logger.Info(ctx, "tg", "handler.handled",
			append([]slog.Attr{slog.String("status", outcome), slog.String("outcome", outcome)}, attrs...)...)
		return err
	}
}

// handlerName turns "/Start" or "Main Menu" into "start" or "main_menu".
func handlerName(raw string) string {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "/"))
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// errorCode is the Code of the first error in the chain that has one.
func errorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		if code := strings.TrimSpace(coded.Code()); code != "" {
			return code
		}
	}
	return "internal"
}
