package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"villa_backend/internal/app"
	"villa_backend/internal/config"
	"villa_backend/internal/handlers"
	"villa_backend/internal/router"
	"villa_backend/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		utils.LogError(err, "Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "json")
		return err
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := application.Close(closeCtx); closeErr != nil {
			utils.LogError(closeErr, "Failed to close connections")
		}
	}()
	utils.LogInfo("Database initialized", map[string]interface{}{
		"host":             cfg.DB.Host,
		"analytics_source": cfg.Analytics.Source,
		"timezone":         cfg.App.Timezone,
	})

	engine := router.NewEngine(cfg.Server)
	router.Setup(engine, router.Handlers{
		Analytics:    handlers.NewAnalyticsHandler(application.Analytics),
		Reservations: handlers.NewReservationHandler(application.Reservations),
		Clients:      handlers.NewClientHandler(application.Clients),
		Invoices:     handlers.NewInvoiceHandler(application.Invoices),
		Expenses:     handlers.NewExpenseHandler(application.Expenses),
	}, utils.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port, "mode": cfg.Server.Mode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utils.LogInfo("Server exited")
	return nil
}
