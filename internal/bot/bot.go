// Package bot binds the navigator to Telegram: commands, the navigation
// callback, fallbacks and the admin usage report.
package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
	tg "github.com/m3rciful/specialtybot/core/telegram"
	"github.com/m3rciful/specialtybot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/specialtybot/core/telegram/helpers"
	"github.com/m3rciful/specialtybot/internal/audit"
	"github.com/m3rciful/specialtybot/internal/menu"
	"github.com/m3rciful/specialtybot/internal/navigator"
	"github.com/m3rciful/specialtybot/internal/view"
)

// NavUnique is the callback unique carried by every menu button.
const NavUnique = "nav"

const (
	component   = "nav"
	startHint   = "Please use /start to open the menu."
	noUsageText = "No navigation recorded yet."
)

var navigations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bot",
	Name:      "navigations_total",
	Help:      "Resolved navigation callbacks, by screen kind and outcome.",
}, []string{"screen", "outcome"})

func init() {
	metrics.MustRegister(navigations)
}

// Options configures a Bot.
type Options struct {
	Navigator *navigator.Navigator
	// Audit receives navigation events through a Recorder and answers /usage.
	Audit audit.Store
	// AdminID enables /usage for that Telegram user. Zero disables it.
	AdminID    int64
	UsageLimit int
}

// Bot holds the Telegram handlers. It is stateless per chat: the token on
// each button is the whole navigation state.
type Bot struct {
	nav        *navigator.Navigator
	audit      audit.Store
	recorder   *audit.Recorder
	adminID    int64
	usageLimit int
}

// New builds a Bot. A nil Audit store records nothing.
func New(opts Options) *Bot {
	store := opts.Audit
	if store == nil {
		store = audit.Nop{}
	}
	limit := opts.UsageLimit
	if limit <= 0 {
		limit = 10
	}
	return &Bot{
		nav:        opts.Navigator,
		audit:      store,
		recorder:   audit.NewRecorder(store),
		adminID:    opts.AdminID,
		usageLimit: limit,
	}
}

// Register adds commands and the navigation callback to reg.
func (b *Bot) Register(reg *tg.Registry) error {
	cmds := map[string]tg.Command{
		"/start": {Handler: b.Start, Description: "Open the main menu"},
		"/help":  {Handler: b.Help, Description: "How to use this bot"},
	}
	if b.adminID != 0 {
		cmds["/usage"] = tg.Command{Handler: b.Usage, Description: "Most visited screens", AdminOnly: true, Hidden: true}
	}
	for name, cmd := range cmds {
		if err := reg.RegisterCommand(name, cmd); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	if err := reg.RegisterCallback(NavUnique, b.Navigate); err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	reg.SetCallbackNotFound(b.UnknownCallback())
	return nil
}

// Close writes pending audit events and closes the audit store.
func (b *Bot) Close() error {
	return b.recorder.Close()
}

// Markup builds the inline keyboard for v, one button per row in option order.
func Markup(v view.View) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(v.Options))
	for _, o := range v.Options {
		rows = append(rows, m.Row(m.Data(o.Label, NavUnique, o.Token)))
	}
	m.Inline(rows...)
	return m
}

// Start sends the welcome text with the main menu as a new message.
func (b *Bot) Start(c tele.Context) error {
	v := b.nav.Start()
	return tghelpers.SendText(c, v.Text, &tele.SendOptions{ReplyMarkup: Markup(v)})
}

// Help sends a short usage hint.
func (b *Bot) Help(c tele.Context) error {
	return tghelpers.SendText(c, view.HelpText)
}

// Navigate resolves the token of a pressed menu button and edits the
// message in place.
func (b *Bot) Navigate(c tele.Context) error {
	return b.show(c, callbacks.Payload(c))
}

func (b *Bot) show(c tele.Context, token string) error {
	ctx := tghelpers.BuildContext(c)
	v, screen, err := b.nav.Resolve(token)

	outcome := "ok"
	screenName := menu.Encode(screen)
	if err != nil {
		outcome = "fallback"
		screenName = menu.Invalid.String()
		logger.Warn(ctx, component, "nav.fallback",
			slog.String("token", logger.SanitizeLimit(token, 64)),
			slog.String("err", err.Error()),
			slog.String("err_code", errorCode(err)),
		)
	} else {
		logger.Debug(ctx, component, "nav.resolved",
			slog.String("token", token),
			slog.String("screen", screenName),
		)
	}
	navigations.WithLabelValues(screen.Kind.String(), outcome).Inc()

	editErr := c.Edit(v.Text, Markup(v))
	b.record(c, token, screenName, err != nil)
	if editErr != nil && !isNotModified(editErr) {
		return fmt.Errorf("bot: edit menu: %w", editErr)
	}
	return nil
}

// record queues the audit event; it never waits on storage.
func (b *Bot) record(c tele.Context, token, screen string, fallback bool) {
	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}
	e := audit.NewEvent(chatID, userID, logger.SanitizeLimit(token, 64), screen, fallback)
	if !b.recorder.Add(e) {
		logger.Warn(tghelpers.BuildContext(c), "audit", "audit.dropped", slog.String("screen", screen))
	}
}

// Usage reports the most visited screens. Registered for the admin only.
func (b *Bot) Usage(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	rows, err := b.audit.TopScreens(ctx, b.usageLimit)
	if err != nil {
		logger.Error(ctx, "audit", "audit.usage_failed", slog.String("err", err.Error()))
		return tghelpers.SendText(c, "Usage report is unavailable.")
	}
	return tghelpers.SendText(c, UsageText(rows))
}

// UsageText formats a usage report.
func UsageText(rows []audit.ScreenCount) string {
	if len(rows) == 0 {
		return noUsageText
	}
	var sb strings.Builder
	sb.WriteString("Most visited screens:\n")
	for i, r := range rows {
		fmt.Fprintf(&sb, "%d. %s: %d\n", i+1, r.Screen, r.Visits)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func isNotModified(err error) bool {
	if errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrMessageNotModified) {
		return true
	}
	return strings.Contains(err.Error(), "message is not modified")
}

func errorCode(err error) string {
	var coder interface{ Code() string }
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return "unknown"
}
