package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/HarvestBot_Go/internal/api"
	"github.com/osse101/HarvestBot_Go/internal/config"
	"github.com/osse101/HarvestBot_Go/internal/farm"
	"github.com/osse101/HarvestBot_Go/internal/history"
	"github.com/osse101/HarvestBot_Go/internal/market"
	"github.com/osse101/HarvestBot_Go/internal/secrets"
	"github.com/osse101/HarvestBot_Go/internal/server"
	"github.com/osse101/HarvestBot_Go/internal/stats"
	"github.com/osse101/HarvestBot_Go/internal/strategy"
	"github.com/osse101/HarvestBot_Go/internal/worker"
)

// App holds every wired component of the bot.
type App struct {
	Config  *config.Config
	Client  *api.Client
	State   *farm.State
	Market  *market.Provider
	Session *stats.Session
	History *history.Store

	Collector  *worker.Collector
	Renewal    *worker.Renewal
	Strategist *worker.Strategist
	Server     *server.Server
}

// Build wires the full application from configuration. It runs the one-time
// registration flow when no credentials are configured, and opens the
// decision history store (a failure there is downgraded to a warning).
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	warnings, err := cfg.ValidateStartupWithWarnings()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	client := api.NewClient(api.Options{
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

	if !cfg.HasCredentials() {
		if err := Register(ctx, cfg, client, secrets.NewStore(cfg.EnvFile)); err != nil {
			return nil, err
		}
	}

	tuning, err := strategy.LoadTuning(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	tuning.MinReserve = cfg.MinWaterReserve

	var historyDB *history.Store
	if cfg.HistoryDBPath != "" {
		historyDB, err = history.Open(cfg.HistoryDBPath)
		if err != nil {
			slog.Warn(LogMsgHistoryDisabled, "error", err)
			historyDB = nil
		}
	}

	state := farm.NewState()
	provider := market.NewProvider(client, cfg.MarketRefreshInterval)
	session := stats.NewSession(time.Now())
	engine := strategy.NewEngine(strategy.NewReferencePolicy(tuning), cfg.ExpansionROIThreshold)

	app := &App{
		Config:     cfg,
		Client:     client,
		State:      state,
		Market:     provider,
		Session:    session,
		History:    historyDB,
		Collector:  worker.NewCollector(client, state, session, recorderOrNil(historyDB), cfg.CollectInterval),
		Renewal:    worker.NewRenewal(client, cfg.TokenRefreshInterval),
		Strategist: worker.NewStrategist(client, provider, state, engine, session, recorderOrNil(historyDB), cfg.StrategyInterval),
		Server:     server.NewServer(cfg.StatusPort, state, provider, session, readerOrNil(historyDB)),
	}
	return app, nil
}

// Start launches the workers and the status server. The server error channel
// is returned so main can treat an unexpected listener failure as fatal.
func (a *App) Start() <-chan error {
	a.Collector.Start()
	a.Renewal.Start()
	a.Strategist.Start()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Server.Start()
	}()

	slog.Info(LogMsgBotStarted,
		"base_url", a.Config.BaseURL,
		"status_port", a.Config.StatusPort,
		"collect_interval", a.Config.CollectInterval,
		"strategy_interval", a.Config.StrategyInterval)
	return serverErr
}

// Shutdown stops all components: the status server first, then the workers,
// then the history store. Errors are logged, never fatal.
func (a *App) Shutdown(ctx context.Context) {
	slog.Info(LogMsgShuttingDown)

	if err := a.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}
	if err := a.Collector.Shutdown(ctx); err != nil {
		slog.Error("Water collector shutdown failed", "error", err)
	}
	if err := a.Renewal.Shutdown(ctx); err != nil {
		slog.Error("Token renewal worker shutdown failed", "error", err)
	}
	if err := a.Strategist.Shutdown(ctx); err != nil {
		slog.Error("Strategist shutdown failed", "error", err)
	}
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			slog.Error("History store close failed", "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}

// Register runs the one-time registration flow: create the farmer, install
// the issued credentials on the client, and persist them for later runs.
func Register(ctx context.Context, cfg *config.Config, client *api.Client, store *secrets.Store) error {
	slog.Info(LogMsgRegistering, "farmer", cfg.FarmerName)

	resp, err := client.Register(ctx, cfg.FarmerName)
	if err != nil {
		return fmt.Errorf("register farmer %q: %w", cfg.FarmerName, err)
	}

	cfg.ClientID = resp.ClientID
	cfg.ClientSecret = resp.ClientSecret
	client.SetCredentials(resp.ClientID, resp.ClientSecret)

	if err := store.SaveCredentials(resp.ClientID, resp.ClientSecret); err != nil {
		slog.Warn(LogMsgCredentialsSaveFail, "error", err)
		return nil
	}

	slog.Info(LogMsgRegistered, "farmer", cfg.FarmerName, "env_file", cfg.EnvFile)
	return nil
}

// recorderOrNil avoids handing a typed-nil *history.Store to an interface.
func recorderOrNil(s *history.Store) worker.DecisionRecorder {
	if s == nil {
		return nil
	}
	return s
}

func readerOrNil(s *history.Store) server.HistoryReader {
	if s == nil {
		return nil
	}
	return s
}
