package main

import (
	"fmt"
	"os"

	"github.com/m3rciful/specialtybot/core/cmd"
	"github.com/m3rciful/specialtybot/internal/app"
	"github.com/m3rciful/specialtybot/internal/config"
)

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(c cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := c.(*config.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", c)
			}
			a, err := app.Bootstrap(cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
