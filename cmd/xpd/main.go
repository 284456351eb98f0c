// Command xpd serves the XP tracker HTTP API.
//
// @title        XP Tracker API
// @version      1.0
// @description  Log learning experiences, tag them with categories and browse them by date.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"

	"github.com/xplog/xp-tracker/internal/api"
	"github.com/xplog/xp-tracker/internal/app"
	"github.com/xplog/xp-tracker/internal/infrastructure/config"
	"github.com/xplog/xp-tracker/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "xpd",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("xpd stopped")
	}
	log.Info().Msg("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	svc := app.NewServices(st, cfg.Seed.OwnerID, log)

	if cfg.Seed.OnStart {
		n, err := app.Seed(ctx, svc.Categories)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		log.Info().Int("inserted", n).Msg("seeding finished")
	}

	e := api.NewRouter(api.Deps{
		XP:         svc.XP,
		Categories: svc.Categories,
		Users:      svc.Users,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
		Checks:     st.Checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", st.Backend).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
