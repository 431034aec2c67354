package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"ponto/backend/config"
	"ponto/backend/global"
	"ponto/backend/initialize"
	"ponto/backend/server"
)

func main() {
	cfgPath := flag.String("config", "config/backend.yaml", "Path to configuration file (empty for env only)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("load config")
	}
	initialize.InitLogger(cfg.Log)

	app, err := initialize.Build(cfg)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}
	defer app.Close()

	if err := config.Watch(*cfgPath, func(next *config.Config) {
		lvl := initialize.SetLevel(next.Log.Level)
		global.Logger.Info().Str("level", lvl.String()).Msg("log level reloaded")
	}); err != nil {
		global.Logger.Warn().Err(err).Msg("config watch disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, cfg.HTTP.Host, cfg.HTTP.Port, app.Router); err != nil {
		global.Logger.Error().Err(err).Msg("http server")
		os.Exit(1)
	}
}
