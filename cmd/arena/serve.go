package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/config"
	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/httpapi"
	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the debate arena HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "Listen port (overrides ARENA_PORT env var)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Root().PersistentFlags().GetString("env-file")
	apiKey, _ := cmd.Root().PersistentFlags().GetString("api-key")
	port, _ := cmd.Flags().GetInt("port")

	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if apiKey != "" {
		os.Setenv("OPENROUTER_API_KEY", apiKey)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Port
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	client := openrouter.NewClient(cfg.APIKey)
	client.SetAppURL(cfg.AppURL)
	client.SetLogger(logger)

	engine := debate.NewEngine(client)
	engine.SetLogger(logger)

	store := session.NewMemoryStore()
	orch := session.NewOrchestrator(engine, client, store)
	orch.SetLogger(logger)

	handler := httpapi.NewHandler(store, func(sessionID string) {
		go orch.Run(context.Background(), sessionID)
	})
	handler.SetLogger(logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	handler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info("starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
