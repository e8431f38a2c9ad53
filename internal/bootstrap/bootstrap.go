package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/GregMSThompson/bank-portal/internal/client/bankapi"
	"github.com/GregMSThompson/bank-portal/internal/config"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/internal/store"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Metrics   *prometheus.Registry
	BankAPI   *bankapi.Client
	Sessions  session.Store
	Firestore *firestore.Client
	KMS       *gcpkms.KeyManagementClient

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))
	bs.Metrics = InitMetrics()
	bs.BankAPI = bankapi.New(cfg.BankAPIBaseURL, cfg.BankAPITimeout,
		bankapi.WithMetrics(bankapi.NewMetrics(bs.Metrics)))

	bs.Sessions, err = bs.initSessions(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Log.Info("bootstrap complete",
		"session_backend", cfg.SessionBackend,
		"bankapi", cfg.BankAPIBaseURL)
	return bs, nil
}

// InitMetrics returns a registry carrying the runtime collectors.
func InitMetrics() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (bs *Bootstrap) initSessions(ctx context.Context, cfg *config.Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionSQLite:
		s, err := store.NewSQLiteSessionStore(cfg.SessionSQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite sessions: %w", err)
		}
		bs.closers = append(bs.closers, s.Close)
		return s, nil

	case config.SessionFirestore:
		return bs.initFirestoreSessions(ctx, cfg)

	default:
		return session.NewMemoryStore(), nil
	}
}

// Close releases every client opened by Run, in reverse order.
func (bs *Bootstrap) Close() error {
	var errs []error
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
