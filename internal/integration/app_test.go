package integration_test

import (
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-tickets/internal/app"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/service"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Payments *payment.LogPaymentService
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	payments := payment.NewLogPaymentService(logger)
	reservations := reservation.NewPostgresSeatReservationService(db)

	ticketService, err := service.NewTicketService(logger, payments, reservations)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	application, err := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		ticketService,
	)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	return &TestApp{
		App:      application,
		DB:       db,
		Redis:    redisClient,
		Payments: payments,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}
