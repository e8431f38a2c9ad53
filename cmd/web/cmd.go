package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/bootstrap"
	"github.com/GregMSThompson/bank-portal/internal/config"
	"github.com/GregMSThompson/bank-portal/internal/handlers"
	"github.com/GregMSThompson/bank-portal/internal/mount"
	"github.com/GregMSThompson/bank-portal/internal/render"
	"github.com/GregMSThompson/bank-portal/internal/response"
	"github.com/GregMSThompson/bank-portal/internal/router"
	"github.com/GregMSThompson/bank-portal/internal/services"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// sessions
	sessions := session.NewManager(bs.Sessions, session.CookieOptions{Secure: cfg.CookieSecure})

	// views
	views := mount.NewRegistry(cfg.MountIdleTTL)
	go views.Run(logger.ToContext(ctx, bs.Log), time.Minute)

	// templates
	renderer, err := render.New()
	exitOnError("template parse failed", err, bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(renderer)
	deps.Views = views
	deps.Sessions = sessions
	deps.AuthSvc = services.NewAuthService(bs.BankAPI)
	deps.DirectorySvc = services.NewDirectoryService(bs.BankAPI)
	deps.CustomerSvc = services.NewCustomerService(bs.BankAPI)
	deps.StaffFormSvc = services.NewStaffFormService(bs.BankAPI, cfg.NavigationDelay)
	deps.TransferSvc = services.NewTransferService(bs.BankAPI)
	deps.LoanSvc = services.NewLoanService(bs.BankAPI, cfg.NavigationDelay)
	deps.AnalyticsSvc = services.NewAnalyticsService(bs.BankAPI)

	// router
	r := router.NewRouter(deps, sessions, router.Observability{Registry: bs.Metrics})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Warn("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
