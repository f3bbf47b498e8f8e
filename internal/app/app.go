// Package app wires configuration, content, audit storage and the Telegram
// handlers into runnable options for the core runtime.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	coredatabase "github.com/m3rciful/specialtybot/core/database"
	"github.com/m3rciful/specialtybot/core/logger"
	"github.com/m3rciful/specialtybot/core/metrics"
	coretelegram "github.com/m3rciful/specialtybot/core/telegram"
	"github.com/m3rciful/specialtybot/core/telegram/router"
	"github.com/m3rciful/specialtybot/internal/audit"
	"github.com/m3rciful/specialtybot/internal/bot"
	"github.com/m3rciful/specialtybot/internal/config"
	"github.com/m3rciful/specialtybot/internal/content"
	"github.com/m3rciful/specialtybot/internal/menu"
	"github.com/m3rciful/specialtybot/internal/navigator"
)

// App is a bootstrapped bot ready to run.
type App struct {
	cfg *config.Config
	db  *sqlx.DB
	nav *navigator.Navigator
	bot *bot.Bot
}

// Bootstrap initializes logging, the optional audit database and the content
// store. Content that fails to load or validate is fatal.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if err := logger.Init(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	db, err := openAudit(cfg.DatabaseConfig())
	if err != nil {
		return nil, err
	}

	nav, err := loadNavigator(cfg.Content.Path)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	var store audit.Store = audit.Nop{}
	if db != nil {
		store = audit.NewPostgresStore(db)
	}

	a := &App{
		cfg: cfg,
		db:  db,
		nav: nav,
		bot: bot.New(bot.Options{
			Navigator:  nav,
			Audit:      store,
			AdminID:    cfg.Telegram.AdminID,
			UsageLimit: cfg.Audit.UsageLimit,
		}),
	}
	logger.Info(context.Background(), "app", "app.bootstrapped",
		slog.Bool("audit", db != nil),
		slog.String("metrics", cfg.Metrics.Listen),
	)
	return a, nil
}

// openAudit connects and migrates the audit database. A nil cfg means audit
// is disabled.
func openAudit(cfg *coredatabase.Config) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, nil
	}
	db, err := coredatabase.Connect(*cfg)
	if err != nil {
		return nil, fmt.Errorf("app: audit database: %w", err)
	}
	if err := coredatabase.Migrate(*cfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: audit database: %w", err)
	}
	return db, nil
}

func loadNavigator(path string) (*navigator.Navigator, error) {
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	screens, err := menu.Reachable(c)
	if err != nil {
		return nil, fmt.Errorf("app: menu graph: %w", err)
	}
	logger.Info(context.Background(), "content", "menu.checked",
		slog.String("status", "ok"),
		slog.Int("screens", len(screens)),
	)
	return navigator.New(c), nil
}

// Navigator returns the navigator serving the loaded content.
func (a *App) Navigator() *navigator.Navigator {
	return a.nav
}

// TelegramRunOptions builds the registry, routes and lifecycle hooks for the core runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()
	reg := coretelegram.NewRegistry()
	if err := a.bot.Register(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}

	routes := router.Commands(reg, core.Telegram.AdminID, a.bot.UnknownText())
	routes = append(routes, router.Callbacks(reg))
	routes = append(routes, router.Text(reg, a.bot.UnknownText(), a.bot.UnknownDocument())...)

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(core),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			go func() {
				if err := metrics.Serve(ctx, core.Metrics.Listen); err != nil {
					logger.Error(ctx, "metrics", "metrics.serve_failed", slog.String("err", err.Error()))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if err := a.bot.Close(); err != nil {
				return fmt.Errorf("app: close audit: %w", err)
			}
			return nil
		},
	}, nil
}
