package logger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type ctxKey int

const (
	ridKey ctxKey = iota
	updateKey
	handlerKey
)

type updateMeta struct {
	updateID int
	userID   int64
	chatID   int64
}

// WithRID attaches a request correlation id that every line logged with ctx carries.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(orBackground(ctx), ridKey, rid)
}

func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(ridKey).(string)
	return rid
}

// WithUpdateMeta attaches the Telegram update, user and chat ids.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	return context.WithValue(orBackground(ctx), updateKey, updateMeta{updateID: updateID, userID: userID, chatID: chatID})
}

// WithHandler names the handler serving the update.
func WithHandler(ctx context.Context, name string) context.Context {
	if name == "" {
		return orBackground(ctx)
	}
	return context.WithValue(orBackground(ctx), handlerKey, name)
}

// BuildRID formats updateID:chatID:userID.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("%d:%d:%d", updateID, chatID, userID)
}

// shortRID rewrites each numeric part of a BuildRID value in base 36.
// Anything else is returned as is.
func shortRID(rid string) string {
	parts := strings.Split(rid, ":")
	if len(parts) != 3 {
		return rid
	}
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return rid
		}
		parts[i] = strconv.FormatInt(n, 36)
	}
	return strings.Join(parts, ".")
}

// SanitizeLimit drops control and format runes, keeping tabs and newlines,
// and truncates the result to max runes.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	out := make([]rune, 0, min(len(s), max))
	for _, r := range s {
		if len(out) == max {
			break
		}
		if r != '\n' && r != '\t' && (unicode.IsControl(r) || unicode.Is(unicode.Cf, r)) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
