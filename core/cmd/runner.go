// Package cmd is the shared main for bots built on core: resolve the config
// path, load it, bootstrap the app and run Telegram until SIGINT or SIGTERM.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
	"github.com/m3rciful/specialtybot/core/logger"
	coretelegram "github.com/m3rciful/specialtybot/core/telegram"
)

const defaultConfigEnv = "CONFIG_PATH"

// ConfigCarrier is any app config that embeds the core one.
type ConfigCarrier interface {
	CoreConfig() *coreconfig.Config
}

type TelegramApp interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

// Options wires an app into Run. ShutdownLogger and RunTelegram default to
// logger.Shutdown and telegram.Run.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	LoadConfig func(path string) (ConfigCarrier, error)
	Bootstrap  func(cfg ConfigCarrier) (TelegramApp, error)

	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error
}

func Run(opts Options) error {
	if opts.LoadConfig == nil || opts.Bootstrap == nil {
		return errors.New("cmd: LoadConfig and Bootstrap are required")
	}
	env := opts.ConfigEnvVar
	if env == "" {
		env = defaultConfigEnv
	}
	path := os.Getenv(env)
	if path == "" {
		path = opts.DefaultConfigPath
	}
	if path == "" {
		return fmt.Errorf("cmd: no config path in $%s and no default", env)
	}

	cfg, err := opts.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("cmd: load config %s: %w", path, err)
	}
	if cfg == nil || cfg.CoreConfig() == nil {
		return errors.New("cmd: config has no core section")
	}

	shutdown := opts.ShutdownLogger
	if shutdown == nil {
		shutdown = logger.Shutdown
	}
	defer func() {
		if err := shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "cmd: flush logs: %v\n", err)
		}
	}()

	startedAt := time.Now()
	app, err := opts.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap: %w", err)
	}
	runOpts, err := app.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options: %w", err)
	}
	announce(&runOpts, startedAt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := opts.RunTelegram
	if run == nil {
		run = coretelegram.Run
	}
	return run(ctx, runOpts)
}

// announce logs readiness after the app's OnStart and the shutdown before its OnStop.
func announce(opts *coretelegram.RunOptions, startedAt time.Time) {
	onStart, onStop := opts.OnStart, opts.OnStop
	opts.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if onStart != nil {
			if err := onStart(ctx, rt); err != nil {
				return err
			}
		}
		logger.Info(ctx, "app", "ready", slog.Duration("startup", time.Since(startedAt)))
		return nil
	}
	opts.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		logger.Info(ctx, "app", "shutdown")
		if onStop == nil {
			return nil
		}
		return onStop(ctx, rt)
	}
}
