// Command seed writes the default categories into the configured backend.
// It is a no-op when any category already exists.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xplog/xp-tracker/internal/app"
	"github.com/xplog/xp-tracker/internal/infrastructure/config"
	"github.com/xplog/xp-tracker/pkg/logger"
)

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
		Service: "seed",
	})

	st, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer func() { _ = st.Close(context.Background()) }()

	n, err := app.Seed(ctx, app.NewServices(st, cfg.Seed.OwnerID, log).Categories)
	if err != nil {
		log.Error().Err(err).Int("inserted", n).Msg("seeding failed")
		_ = st.Close(context.Background())
		os.Exit(1)
	}
	fmt.Printf("inserted %d default categories\n", n)
}
