package main

import (
	"context"
	"fmt"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/bootstrap"
	"github.com/osse101/HarvestBot_Go/internal/config"
	"github.com/osse101/HarvestBot_Go/internal/secrets"
)

func newOneshotClient(cfg *config.Config) *api.Client {
	return api.NewClient(api.Options{
		BaseURL:      cfg.BaseURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		HTTPTimeout:  cfg.HTTPTimeout,
		SafetyMargin: cfg.TokenSafetyMargin,
		Retry: api.RetryPolicy{
			BaseDelay:   cfg.RetryBaseDelay,
			MaxDelay:    cfg.RetryMaxDelay,
			MaxAttempts: cfg.RetryMaxAttempts,
		},
	})
}

// runRegister performs the registration flow and exits, for operators who
// want the credentials on disk before starting the bot proper.
func runRegister(ctx context.Context, cfg *config.Config) error {
	if cfg.FarmerName == "" {
		return fmt.Errorf("set %s to register a new farmer", config.EnvFarmerName)
	}
	if cfg.HasCredentials() {
		return fmt.Errorf("%s and %s are already set; refusing to register again", config.EnvClientID, config.EnvClientSecret)
	}

	client := newOneshotClient(cfg)
	if err := bootstrap.Register(ctx, cfg, client, secrets.NewStore(cfg.EnvFile)); err != nil {
		return err
	}

	fmt.Printf("Registered farmer %q; credentials written to %s\n", cfg.FarmerName, cfg.EnvFile)
	return nil
}

// runStats prints the farmer profile.
func runStats(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateStartup(); err != nil {
		return err
	}

	client := newOneshotClient(cfg)
	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Farmer:        %s\n", profile.PlayerName)
	fmt.Printf("Water:         %d\n", profile.Score)
	fmt.Printf("Credits:       %.2f\n", profile.Credits)
	fmt.Printf("Total calls:   %d\n", profile.TotalCalls)
	fmt.Printf("Registered at: %s\n", profile.RegisteredAt)
	return nil
}

// runLeaderboard prints the current ranking.
func runLeaderboard(ctx context.Context, cfg *config.Config) error {
	client := newOneshotClient(cfg)
	board, err := client.Leaderboard(ctx)
	if err != nil {
		return err
	}

	for i, entry := range board.Leaderboard {
		fmt.Printf("%3d. %-24s %d\n", i+1, entry.PlayerName, entry.Score)
	}
	return nil
}
