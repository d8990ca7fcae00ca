package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoeWHoward/DockerPlayground/internal/config"
	"github.com/JoeWHoward/DockerPlayground/internal/handler"
	"github.com/JoeWHoward/DockerPlayground/internal/logger"
	"github.com/JoeWHoward/DockerPlayground/internal/repository"
	"github.com/JoeWHoward/DockerPlayground/internal/router"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

// DefaultContextTimeout bounds the graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

// newBootstrapLogger writes the failures that happen before the configured
// logger exists.
func newBootstrapLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		With().
		Timestamp().
		Str("component", "bootstrap").
		Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		bootLog := newBootstrapLogger(os.Stderr)
		bootLog.Fatal().Err(err).Msg("startup failed")
	}

	// Shut down by srv.Shutdown.
	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories()

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)

	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
