package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/specialtybot/core/config"
	coretelegram "github.com/m3rciful/specialtybot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type app struct{ opts coretelegram.RunOptions }

func (a app) TelegramRunOptions() (coretelegram.RunOptions, error) { return a.opts, nil }

func TestRunRequiresHooks(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("expected error without LoadConfig")
	}
	if err := Run(Options{LoadConfig: func(string) (ConfigCarrier, error) { return nil, nil }}); err == nil {
		t.Fatal("expected error without Bootstrap")
	}
}

func TestRunUsesEnvConfigPath(t *testing.T) {
	t.Setenv("SPECIALTY_CONFIG", "/etc/bot.yaml")
	core := &coreconfig.Config{}

	var (
		loadedFrom string
		ran        bool
	)
	err := Run(Options{
		ConfigEnvVar:      "SPECIALTY_CONFIG",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedFrom = path
			return carrier{cfg: core}, nil
		},
		Bootstrap: func(ConfigCarrier) (TelegramApp, error) {
			return app{opts: coretelegram.RunOptions{Config: core}}, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(_ context.Context, opts coretelegram.RunOptions) error {
			ran = true
			if opts.Config != core {
				t.Fatal("run options lost the core config")
			}
			if opts.OnStart == nil || opts.OnStop == nil {
				t.Fatal("lifecycle hooks not wrapped")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loadedFrom != "/etc/bot.yaml" {
		t.Fatalf("config loaded from %q", loadedFrom)
	}
	if !ran {
		t.Fatal("RunTelegram not called")
	}
}

func TestRunBootstrapFailureShutsDownLogger(t *testing.T) {
	shutdown := false
	err := Run(Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(string) (ConfigCarrier, error) {
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(ConfigCarrier) (TelegramApp, error) {
			return nil, errors.New("content missing")
		},
		ShutdownLogger: func() error { shutdown = true; return nil },
	})
	if err == nil {
		t.Fatal("expected bootstrap error")
	}
	if !shutdown {
		t.Fatal("logger not shut down after bootstrap failure")
	}
}
