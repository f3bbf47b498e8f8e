// Package telegram runs a telebot bot from a core config: it picks the
// poller, installs middlewares and routes, publishes the command menu and
// stops cleanly when the context ends.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/telegram/helpers"
	"github.com/m3rciful/specialtybot/core/telegram/sender"
)

const (
	component          = "tg"
	defaultPollTimeout = 10 * time.Second
)

// Middleware is a named global middleware, installed in slice order.
type Middleware struct {
	Name string
	Use  tele.MiddlewareFunc
}

// Route binds a handler to a telebot endpoint such as "/start" or tele.OnCallback.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

type RunOptions struct {
	Config      *coreconfig.Config
	Registry    *Registry
	Middlewares []Middleware
	Routes      []Route

	// OnStart runs after routes are installed and before updates flow.
	// An error aborts Run.
	OnStart func(ctx context.Context, rt Runtime) error
	// OnStop runs after the bot stopped and before queued sends are drained.
	OnStop func(ctx context.Context, rt Runtime) error
}

// Runtime is what lifecycle hooks can reach.
type Runtime struct {
	Registry   *Registry
	Dispatcher *sender.Dispatcher
}

// Run serves updates until ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Config == nil {
		return errors.New("telegram: nil config")
	}
	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	poller, pollTimeout := newPoller(cfg)
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: newHTTPClient(pollTimeout),
		OnError: func(err error, c tele.Context) {
			ctx := context.Background()
			if c != nil {
				ctx = helpers.BuildContext(c)
			}
			logger.Error(ctx, component, "tg.handler_error", slog.String("err", err.Error()))
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: create bot: %w", err)
	}
	logger.Info(ctx, component, "tg.mode",
		slog.String("mode", cfg.Telegram.RunMode),
		slog.String("username", bot.Me.Username),
		slog.Duration("poll_timeout", pollTimeout),
	)

	if cfg.Telegram.RunMode == coreconfig.RunModeLongpoll {
		if err := bot.RemoveWebhook(); err != nil {
			logger.Warn(ctx, component, "tg.remove_webhook", slog.String("err", err.Error()))
		}
	}

	for _, mw := range opts.Middlewares {
		bot.Use(mw.Use)
	}
	for _, r := range opts.Routes {
		bot.Handle(r.Endpoint, r.Handler)
	}
	if err := bot.SetCommands(reg.MenuCommands()); err != nil {
		logger.Warn(ctx, component, "tg.set_commands", slog.String("err", err.Error()))
	}

	d := sender.New(sender.Options{})
	helpers.SetDispatcher(d)
	defer func() {
		d.Close()
		helpers.SetDispatcher(nil)
	}()

	rt := Runtime{Registry: reg, Dispatcher: d}
	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			return err
		}
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		bot.Start()
	}()
	<-ctx.Done()
	bot.Stop()
	<-stopped

	if opts.OnStop != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return opts.OnStop(stopCtx, rt)
	}
	return nil
}

// newPoller returns the poller for the configured run mode and the long
// poll timeout it uses.
func newPoller(cfg *coreconfig.Config) (tele.Poller, time.Duration) {
	if cfg.Telegram.RunMode == coreconfig.RunModeWebhook {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", cfg.Webhook.Listen, cfg.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}, 0
	}
	timeout := time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	return &tele.LongPoller{Timeout: timeout}, timeout
}
