package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/HarvestBot_Go/internal/bootstrap"
	"github.com/osse101/HarvestBot_Go/internal/config"
)

func main() {
	registerMode := flag.Bool("register", false, "register a new farmer, persist the credentials, and exit")
	statsMode := flag.Bool("stats", false, "print the farmer profile and exit")
	leaderboardMode := flag.Bool("leaderboard", false, "print the current leaderboard and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	initLogger(cfg)

	ctx := context.Background()

	switch {
	case *registerMode:
		exitOn(runRegister(ctx, cfg))
	case *statsMode:
		exitOn(runStats(ctx, cfg))
	case *leaderboardMode:
		exitOn(runLeaderboard(ctx, cfg))
	default:
		exitOn(runBot(ctx, cfg))
	}
}

func runBot(ctx context.Context, cfg *config.Config) error {
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}

	serverErr := app.Start()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	app.Shutdown(shutdownCtx)
	return nil
}

func exitOn(err error) {
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
