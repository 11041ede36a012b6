package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/routers"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/service"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/metinatakli/cinema-tickets/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config Config
	logger *slog.Logger
	db     *pgxpool.Pool
	redis  redis.UniversalClient

	ticketService domain.TicketService
	apiRouter     routers.Router
}

func Run() error {
	// a missing .env file is fine, flags and the real environment still apply
	_ = godotenv.Load()

	cfg, displayVersion, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	err = cfg.Validate(validator)
	if err != nil {
		return err
	}

	shutdownTelemetry, logger, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	var db *pgxpool.Pool
	if cfg.DB.DSN != "" {
		if cfg.DB.Migrate {
			err = RunMigrations(cfg.DB.DSN)
			if err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}

		db, err = NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	payments := newPaymentService(cfg, logger)

	reservations, closeReservations, err := newSeatReservationService(cfg, db, logger)
	if err != nil {
		return err
	}
	defer closeReservations()

	ticketService, err := service.NewTicketService(logger, payments, reservations)
	if err != nil {
		return err
	}

	var rdb redis.UniversalClient
	if redisClient != nil {
		rdb = redisClient
	}

	app, err := NewApp(cfg, logger, db, rdb, ticketService)
	if err != nil {
		return err
	}

	return app.run()
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	ticketService domain.TicketService) (*Application, error) {

	apiRouter, err := newAPIRouter()
	if err != nil {
		return nil, err
	}

	return &Application{
		config:        cfg,
		logger:        logger,
		db:            db,
		redis:         redisClient,
		ticketService: ticketService,
		apiRouter:     apiRouter,
	}, nil
}

func newPaymentService(cfg Config, logger *slog.Logger) domain.PaymentService {
	if cfg.Stripe.SecretKey == "" {
		logger.Warn("stripe key not set, payments will only be logged")
		return payment.NewLogPaymentService(logger)
	}

	stripe.Key = cfg.Stripe.SecretKey

	return payment.NewStripePaymentService(cfg.Currency, cfg.Stripe.PaymentMethod)
}

func newSeatReservationService(
	cfg Config,
	db *pgxpool.Pool,
	logger *slog.Logger) (domain.SeatReservationService, func(), error) {

	switch cfg.ReservationBackend {
	case ReservationBackendPostgres:
		if db == nil {
			return nil, nil, errors.New("postgres reservation backend requires a database connection")
		}
		return reservation.NewPostgresSeatReservationService(db), func() {}, nil

	case ReservationBackendAMQP:
		svc, err := reservation.DialSeatReservationService(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := svc.Close(); err != nil {
				logger.Error("failed to close amqp connection", "error", err)
			}
		}
		return svc, closeFn, nil

	default:
		return reservation.NewLogSeatReservationService(logger), func() {}, nil
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := redisotel.InstrumentTracing(rdb)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"addr", srv.Addr,
		"env", app.config.Env,
		"reservation_backend", app.config.ReservationBackend,
		"rate_limit", app.config.RateLimit.Enabled)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
