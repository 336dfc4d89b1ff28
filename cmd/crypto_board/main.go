// Package main Crypto Board API
// @title Crypto Board API
// @version 1.0
// @description Aggregated crypto news and social feed with sentiment and keyword trends
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/crypto-board/docs"
	"github.com/DjordjeVuckovic/crypto-board/internal/router"
	"github.com/DjordjeVuckovic/crypto-board/internal/server"
	"github.com/DjordjeVuckovic/crypto-board/pkg/logger"
	"github.com/labstack/echo/v4"
)

const startupTimeout = 30 * time.Second

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logger)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := NewApp(startCtx, cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to initialise application", "error", err)
		os.Exit(1)
	}

	s := server.New(sCfg, app.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Crypto Board API is running")
	})

	feedRouter := router.NewFeedRouter(s.Echo, app.Feed, app.Enricher, app.Runners,
		router.WithPriceHistory(app.Prices),
	)
	feedRouter.Bind()

	go func() {
		if err := app.Refresher.Start(s.Context()); err != nil {
			slog.Error("Feed refresher stopped", "error", err)
		}
	}()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	app.Close()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
