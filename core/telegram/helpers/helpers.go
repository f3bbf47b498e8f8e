// Package helpers gives handlers a logging context per update and a send path
// through the shared dispatcher.
package helpers

import (
	"context"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/telegram/sender"
)

const ctxKey = "core.ctx"

var dispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher routes SendText through d. Nil sends inline.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcher.Store(d)
}

// BuildContext returns the context stored on c, creating one with the
// update's request id on first use.
func BuildContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok {
		return ctx
	}
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}
	updateID := c.Update().ID
	ctx := logger.WithRID(context.Background(), logger.BuildRID(updateID, chatID, userID))
	ctx = logger.WithUpdateMeta(ctx, updateID, userID, chatID)
	c.Set(ctxKey, ctx)
	return ctx
}

// WithHandler names the handler on the stored context.
func WithHandler(c tele.Context, name string) context.Context {
	ctx := logger.WithHandler(BuildContext(c), name)
	c.Set(ctxKey, ctx)
	return ctx
}

// SendText sends plain text to the chat of c.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	send := func() error {
		if len(opts) > 0 && opts[0] != nil {
			return c.Send(text, opts[0])
		}
		return c.Send(text)
	}
	d := dispatcher.Load()
	if d == nil {
		return send()
	}
	return d.Send(BuildContext(c), "send_text", send)
}
