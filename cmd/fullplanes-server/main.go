package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kleinski/full-planes/internal/app"
	"github.com/kleinski/full-planes/internal/server"
)

func main() {
	configPath := os.Getenv("FULLPLANES_CONFIG")

	a, err := app.New(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	srv := server.NewServer(a)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			a.Logger.Error().Err(err).Msg("Server stopped unexpectedly")
			os.Exit(1)
		}
	case sig := <-sigCh:
		a.Logger.Info().Str("signal", sig.String()).Msg("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("Graceful shutdown failed")
			os.Exit(1)
		}
	}

	a.Logger.Info().Msg("Server stopped")
}
