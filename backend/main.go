package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"postboard/backend/global"
	"postboard/backend/initialize"
	"postboard/backend/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the yaml config file (empty for env only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		global.Logger.Fatal().Err(err).Msg("server stopped")
	}
	global.Logger.Info().Msg("shutdown complete")
}

func run(configPath string) error {
	app, err := initialize.Build(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Error().Err(err).Msg("close database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, app.Cfg.Addr(), app.Router)
}
