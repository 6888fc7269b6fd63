package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/hulukipedia/gateway/docs"
	"github.com/hulukipedia/gateway/internal/app"
	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/logger"
)

func main() {
	// Load .env before anything reads the environment
	if err := config.LoadEnvFile(); err != nil {
		_, _ = os.Stderr.WriteString("FATAL: " + err.Error() + "\n")
		os.Exit(1)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		_, _ = os.Stderr.WriteString("FATAL: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize structured logging
	if err := logger.Init(settings.LoggerConfig()); err != nil {
		// Can't use logger here as it failed to initialize
		_, _ = os.Stderr.WriteString("FATAL: Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithComponent(ctx, logger.ComponentNames.Server)

	application, err := app.NewApp(ctx, settings)
	if err != nil {
		logger.Error(logger.WithStage(ctx, logger.LogStages.Initialization), "Failed to initialize application", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         settings.Address(),
		Handler:      application.SetupRoutes(),
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Server starting",
			"address", srv.Addr,
			"swagger_enabled", settings.EnableSwagger,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	exitCode := 0
	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error(ctx, "Server failed", err)
			exitCode = 1
		}
	case <-ctx.Done():
	}

	shutdownCtx := logger.WithStage(context.WithoutCancel(ctx), logger.LogStages.Shutdown)
	shutdownCtx, cancel := context.WithTimeout(shutdownCtx, settings.ShutdownTimeout)
	defer cancel()

	logger.Info(shutdownCtx, "Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Server shutdown failed", err)
		exitCode = 1
	}
	if err := application.Close(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Failed to close usage logger", err)
	}

	if exitCode != 0 {
		cancel()
		stop()
		os.Exit(exitCode)
	}
}
