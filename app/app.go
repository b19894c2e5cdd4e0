package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gigmarket/internal/cache"
	"gigmarket/internal/config"
	"gigmarket/internal/controller"
	"gigmarket/internal/outbox"
	"gigmarket/internal/repo"
	"gigmarket/internal/service"
	"gigmarket/pkg/clock"
	"gigmarket/pkg/http_server"
	"gigmarket/pkg/logger"
	"gigmarket/pkg/postgres"
	"gigmarket/pkg/rabbitmq"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/redis/go-redis/v9"
)

func runMigrations(pg *postgres.Postgres, sourceUrl, databaseName string, log *slog.Logger) error {
	driver, err := pgmigrate.WithInstance(pg.Database.DB, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, databaseName, driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no change made by migration scripts")
			return nil
		}

		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("migrations applied")

	return nil
}

func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	log, closeLog, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	slog.SetDefault(log)

	return log, closeLog, nil
}

// newReportCache is nil when redis is not configured or not reachable; the
// analytics service then computes every report.
func newReportCache(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (service.ReportCache, func() error) {
	if cfg.Addr == "" {
		return nil, func() error { return nil }
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, analytics cache disabled", slog.String("addr", cfg.Addr), slog.Any("error", err))
		rdb.Close()
		return nil, func() error { return nil }
	}
	log.Info("analytics cache enabled", slog.String("addr", cfg.Addr), slog.Duration("ttl", cfg.AnalyticsTTL))

	return cache.NewReportCache(rdb, cfg.AnalyticsTTL), rdb.Close
}

// RunAPI serves the marketplace HTTP API until SIGINT/SIGTERM.
func RunAPI(cfg *config.Config) error {
	if err := cfg.ValidateAPI(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info("connecting database", slog.String("host", cfg.Database.Host), slog.String("database", cfg.Database.Database))
	postgresDB, err := postgres.NewDB(cfg.Database.Postgres())
	if err != nil {
		return err
	}
	defer postgresDB.Close()

	log.Info("running migrations", slog.String("source", cfg.Database.MigrationsPath))
	if err := runMigrations(postgresDB, cfg.Database.MigrationsPath, cfg.Database.Database, log); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reportCache, closeCache := newReportCache(ctx, cfg.Redis, log)
	defer closeCache()

	services := service.NewServices(&service.Dependencies{
		Repos:  repo.NewRepositories(postgresDB),
		Tx:     repo.NewTransactor(postgresDB),
		Clock:  clock.System{},
		Cache:  reportCache,
		Logger: log,
	})

	handler := echo.New()
	handler.HideBanner = true

	log.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services, controller.NewAuthenticator(cfg.Auth.JWTSecret), log)

	httpServer := http_server.New(handler, http_server.Config{
		Address:         cfg.Server.Address,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	log.Info("ready to process requests", slog.String("address", cfg.Server.Address))

	select {
	case <-ctx.Done():
		log.Info("got shutdown signal")
	case err := <-httpServer.Notify():
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("successful shutdown")

	return nil
}

// RunRelay publishes outbox events to RabbitMQ until SIGINT/SIGTERM.
func RunRelay(cfg *config.Config) error {
	if err := cfg.ValidateRelay(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log = log.With(slog.String("component", "outbox-relay"))

	postgresDB, err := postgres.NewDB(cfg.Database.Postgres())
	if err != nil {
		return err
	}
	defer postgresDB.Close()

	publisher, err := rabbitmq.NewPublisher(&rabbitmq.Config{
		URL:             cfg.RabbitMQ.URL,
		Exchange:        cfg.RabbitMQ.Exchange.Name,
		ExchangeType:    cfg.RabbitMQ.Exchange.Type,
		ExchangeDurable: cfg.RabbitMQ.Exchange.Durable,
		ConnectRetries:  cfg.RabbitMQ.Publish.RetryAttempts,
		ConnectInterval: cfg.RabbitMQ.Publish.RetryInterval,
		PublishRetries:  cfg.RabbitMQ.Publish.RetryAttempts,
		PublishDelay:    cfg.RabbitMQ.Publish.RetryInterval,
		BackoffMult:     cfg.RabbitMQ.Publish.BackoffMultiplier,
	}, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay := outbox.NewRelay(repo.NewTransactor(postgresDB), publisher, clock.System{}, log, outbox.Config{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
	})

	return relay.Run(ctx)
}
