package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/team-black-box/tici-taca-toey-server/internal"
	"github.com/team-black-box/tici-taca-toey-server/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()}))
	logger.Info("configuration loaded",
		"http_port", conf.HTTPPort,
		"socket_port", conf.SocketPort,
		"archive", conf.Redis.Enabled(),
		"time_per_player", conf.Game.TimePerPlayer,
	)

	return logger
}
