// Package app builds the services shared by the HTTP server and villactl.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"villa_backend/internal/bookingcode"
	"villa_backend/internal/config"
	"villa_backend/internal/database"
	"villa_backend/internal/repositories"
	"villa_backend/internal/repositories/mongostore"
	"villa_backend/internal/services"
	"villa_backend/pkg/utils"
)

// App owns the open connections and the services built on them.
type App struct {
	DB    *sqlx.DB
	Mongo *mongo.Client
	Redis *redis.Client

	Analytics    services.AnalyticsService
	Reservations services.ReservationService
	Clients      services.ClientService
	Invoices     services.InvoiceService
	Expenses     services.ExpenseService
}

// New connects to the configured stores and wires the services. On error
// every connection opened so far is closed.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	a.DB, err = database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err = database.ApplySchema(ctx, a.DB, cfg.DB.SchemaPath); err != nil {
		return nil, err
	}

	reservationRepo := repositories.NewReservationRepository(a.DB)
	clientRepo := repositories.NewClientRepository(a.DB)
	invoiceRepo := repositories.NewInvoiceRepository(a.DB)
	expenseRepo := repositories.NewExpenseRepository(a.DB)

	var bookingSeq, invoiceSeq bookingcode.Sequencer
	if cfg.Redis.Enabled {
		a.Redis, err = bookingcode.NewRedisClient(ctx, bookingcode.RedisOptions{
			URL:      cfg.Redis.URL,
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		seq := bookingcode.NewRedisSequencer(a.Redis, cfg.Redis.SequenceTTL)
		bookingSeq, invoiceSeq = seq, seq
		utils.LogInfo("Using redis sequence counters", map[string]interface{}{"ttl": cfg.Redis.SequenceTTL.String()})
	} else {
		bookingSeq = bookingcode.NewStoreSequencer(reservationRepo.LastBookingCodeSeq)
		invoiceSeq = bookingcode.NewStoreSequencer(invoiceRepo.LastInvoiceNumberSeq)
	}

	var source repositories.ReservationSource = reservationRepo
	if cfg.Analytics.Source == config.AnalyticsSourceMongo {
		a.Mongo, err = mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		source = mongostore.NewReservationStore(a.Mongo.Database(cfg.Mongo.Database))
		utils.LogInfo("Analytics reading from mongo", map[string]interface{}{"database": cfg.Mongo.Database})
	}

	loc := cfg.App.Location
	a.Analytics = services.NewAnalyticsService(source, loc, nil)
	a.Reservations = services.NewReservationService(reservationRepo, clientRepo, bookingSeq, a.DB, loc)
	a.Clients = services.NewClientService(clientRepo, a.DB)
	a.Invoices = services.NewInvoiceService(invoiceRepo, reservationRepo, invoiceSeq, a.DB, loc)
	a.Expenses = services.NewExpenseService(expenseRepo, a.DB)
	return a, nil
}

// Close releases every open connection and joins their errors.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("closing mongo: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	return errors.Join(errs...)
}
