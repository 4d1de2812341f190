package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpadapter "github.com/iho/fuelwatch/internal/adapter/http"
	"github.com/iho/fuelwatch/internal/domain"
	"github.com/iho/fuelwatch/internal/infrastructure/metrics"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run checks on an interval and expose health and metrics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return app.serve(cmd.Context())
		},
	}
}

// loopState is what the health endpoint sees of the check loop.
type loopState struct {
	mu        sync.Mutex
	lastRun   time.Time
	lastError string
}

func (s *loopState) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = time.Now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
}

func (s *loopState) status() httpadapter.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := httpadapter.Status{Status: "ok", LastRun: s.lastRun, LastError: s.lastError}
	if s.lastError != "" {
		status.Status = "degraded"
	}
	return status
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	state := &loopState{}

	server := &http.Server{
		Addr:         ":" + a.cfg.HTTPPort,
		Handler:      httpadapter.NewRouter(httpadapter.RouterConfig{Health: state.status}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info().Str("port", a.cfg.HTTPPort).Msg("starting observability server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("observability server failed")
		}
	}()

	a.logger.Info().Dur("interval", a.cfg.CheckInterval).Msg("check loop started")

	ticker := time.NewTicker(a.cfg.CheckInterval)
	defer ticker.Stop()

	// First check runs immediately; the ticker handles the rest.
	a.runScheduled(ctx, m, state)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			a.runScheduled(ctx, m, state)
		}
	}
}

// runScheduled runs one check and translates its outcome into metrics and
// health state. Each run is independent: a failed run is terminal and the
// next tick retries from scratch.
func (a *app) runScheduled(ctx context.Context, m *metrics.Metrics, state *loopState) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	m.ChecksStarted.Inc()

	outcome, err := a.check.Run(ctx)
	m.CheckDuration.Observe(time.Since(start).Seconds())
	state.record(err)

	if err != nil {
		m.CheckFailures.WithLabelValues(stageOf(err)).Inc()
		return
	}

	balance, _ := outcome.Balance.BalanceForCheck.Float64()
	m.BalanceForCheck.Set(balance)
	m.TransactionsMatched.Set(float64(outcome.Balance.Matched))
	m.TransactionsClassified.Set(float64(outcome.Balance.Classified))
	m.TransactionsUnclassified.Set(float64(outcome.Balance.Unclassified))

	if outcome.Alert.Fires {
		m.AlertsFired.Inc()
		if outcome.Delivered {
			m.AlertsDelivered.Inc()
		} else {
			m.AlertDeliveryErrors.Inc()
		}
	}
}

// stageOf buckets a run failure for the failure counter.
func stageOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoClassifiedTransactions):
		return "aggregation"
	case errors.Is(err, domain.ErrNoWallets),
		errors.Is(err, domain.ErrAmbiguousWallet),
		errors.Is(err, domain.ErrWalletNotFound):
		return "selection"
	default:
		return "provider"
	}
}
