package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/events"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence/gormdb"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence/memory"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence/redisstore"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/domain/example"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// repositoryBundle is the example repository selected by database.vendor
// together with the release of its connections.
type repositoryBundle struct {
	repository example.Repository
	close      func()
}

type publisherBundle struct {
	publisher ports.EventPublisher
	close     func()
}

func noop() {}

// buildRepository opens the backend named by database.vendor and registers
// its health check.
func buildRepository(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	health ports.HealthRegistry,
) (*repositoryBundle, error) {
	switch cfg.Database.Vendor {
	case config.VendorMemory:
		return &repositoryBundle{
			repository: memory.NewSynchronized[example.ID, *example.Example](memory.NewExampleRepository()),
			close:      noop,
		}, nil

	case config.VendorPostgres, config.VendorSQLite:
		db, err := gormdb.Open(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}

		closeDB := func() {
			if err := gormdb.Close(db); err != nil {
				logger.Error("closing database", slog.Any("error", err))
			}
		}

		if cfg.Database.AutoMigrate {
			if err := gormdb.Migrate(db); err != nil {
				closeDB()
				return nil, err
			}
		}

		if err := health.Register(gormdb.NewHealthChecker(db)); err != nil {
			closeDB()
			return nil, fmt.Errorf("registering database health check: %w", err)
		}

		return &repositoryBundle{repository: gormdb.NewExampleRepository(db), close: closeDB}, nil

	case config.VendorRedis:
		client, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}

		closeClient := func() {
			if err := client.Close(); err != nil {
				logger.Error("closing redis client", slog.Any("error", err))
			}
		}

		if err := health.Register(redisstore.NewHealthChecker(client)); err != nil {
			closeClient()
			return nil, fmt.Errorf("registering redis health check: %w", err)
		}

		return &repositoryBundle{
			repository: redisstore.NewExampleRepository(client, cfg.Redis.KeyPrefix),
			close:      closeClient,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database vendor %q", cfg.Database.Vendor)
	}
}

// buildPublisher publishes to Kafka behind a breaker when events are enabled
// and to the log otherwise.
func buildPublisher(cfg *config.Config, logger *slog.Logger, health ports.HealthRegistry) (*publisherBundle, error) {
	if !cfg.Events.Enabled {
		return &publisherBundle{publisher: events.NewLogPublisher(), close: noop}, nil
	}

	client, err := events.NewKafkaClient(&cfg.Events)
	if err != nil {
		return nil, fmt.Errorf("creating kafka client: %w", err)
	}

	publisher := events.NewBreakingPublisher(
		events.NewKafkaPublisher(client, cfg.Events.Topic),
		cfg.Events.Breaker,
		logger,
	)

	// Examples are stored even when events cannot be delivered, so the
	// broker only degrades readiness.
	for _, checker := range []ports.HealthChecker{events.NewKafkaHealthChecker(client), publisher} {
		if err := health.RegisterOptional(checker); err != nil {
			client.Close()
			return nil, fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	return &publisherBundle{publisher: publisher, close: client.Close}, nil
}
