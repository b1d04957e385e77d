package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/HarvestBot_Go/internal/domain"
	"github.com/osse101/HarvestBot_Go/internal/farm"
	"github.com/osse101/HarvestBot_Go/internal/history"
	"github.com/osse101/HarvestBot_Go/internal/market"
	"github.com/osse101/HarvestBot_Go/internal/stats"
)

// HistoryReader is the read-side of the decision history, nil-able when the
// store is disabled.
type HistoryReader interface {
	RecentDecisions(ctx context.Context, limit int) ([]history.Record, error)
}

// Server exposes the bot's observation surface: liveness, a JSON status
// report, and Prometheus metrics. It never mutates bot state.
type Server struct {
	httpServer *http.Server
	state      *farm.State
	market     *market.Provider
	session    *stats.Session
	historyDB  HistoryReader
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusResponse is the full bot status report.
type StatusResponse struct {
	Farm      domain.FarmSnapshot   `json:"farm"`
	Market    domain.MarketSnapshot `json:"market"`
	Analysis  *market.Analysis      `json:"analysis,omitempty"`
	Session   stats.Snapshot        `json:"session"`
	Decisions []history.Record      `json:"decisions,omitempty"`
}

// NewServer builds the status server on the given port.
func NewServer(port int, state *farm.State, provider *market.Provider, session *stats.Session, historyDB HistoryReader) *Server {
	s := &Server{
		state:     state,
		market:    provider,
		session:   session,
		historyDB: historyDB,
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Get("/status", s.handleStatus)
	r.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	resp := StatusResponse{
		Farm:    s.state.Snapshot(),
		Session: s.session.Snapshot(now),
	}
	if snap, ok := s.market.Last(); ok {
		resp.Market = snap
		analysis := market.Analyze(snap)
		resp.Analysis = &analysis
	}
	if s.historyDB != nil {
		records, err := s.historyDB.RecentDecisions(r.Context(), RecentDecisionLimit)
		if err != nil {
			slog.Default().Error(LogMsgHistoryQueryFailed, "error", err)
		} else {
			resp.Decisions = records
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error(LogMsgEncodeFailed, "error", err)
	}
}
