package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/memoryengine"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgresengine"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/config"
)

const (
	envAdapterType = "ADAPTER_TYPE"

	adapterPGXPool = "pgx.pool"
	adapterSQLDB   = "sql.db"
	adapterSQLX    = "sqlx.db"
)

// openStore creates the configured engine. The returned close function releases its connections.
func openStore(ctx context.Context, cfg Config, obs observers) (catalog.Store, func(), error) {
	if cfg.Engine == engineMemory {
		store, err := memoryengine.NewStore(memoryengine.WithContextualLogger(obs.contextualLogger))
		return store, func() {}, err
	}

	options := []postgresengine.Option{postgresengine.WithContextualLogger(obs.contextualLogger)}
	if obs.metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.metrics))
	}

	if obs.tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.tracing))
	}

	store, closeFn, err := openPostgresStore(ctx, options...)
	if err != nil {
		if closeFn != nil {
			closeFn()
		}

		return nil, nil, err
	}

	if err = store.CreateSchema(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	return store, closeFn, nil
}

func openPostgresStore(ctx context.Context, options ...postgresengine.Option) (*postgresengine.Store, func(), error) {
	adapterType := strings.ToLower(os.Getenv(envAdapterType))
	slog.Info("using database adapter", "adapter", adapterType)

	switch adapterType {
	case adapterPGXPool, "":
		return openPGXPoolStore(ctx, options...)

	case adapterSQLDB:
		db, err := config.PostgresSQLDB(ctx)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		return store, func() { _ = db.Close() }, err

	case adapterSQLX:
		db, err := config.PostgresSQLX(ctx)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		return store, func() { _ = db.Close() }, err

	default:
		return nil, nil, fmt.Errorf("unknown database adapter %q (supported: %s, %s, %s)",
			adapterType, adapterPGXPool, adapterSQLDB, adapterSQLX)
	}
}

// openPGXPoolStore connects the primary pool and, if configured, a replica pool for eventually consistent reads.
func openPGXPoolStore(ctx context.Context, options ...postgresengine.Option) (*postgresengine.Store, func(), error) {
	primaryConfig, err := config.PostgresPGXPoolConfig()
	if err != nil {
		return nil, nil, err
	}

	primary, err := pgxpool.NewWithConfig(ctx, primaryConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pgx pool for primary: %w", err)
	}

	if err = primary.Ping(ctx); err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("failed to connect to primary database: %w", err)
	}

	replicaConfig, hasReplica, err := config.PostgresPGXPoolReplicaConfig()
	if err != nil {
		primary.Close()
		return nil, nil, err
	}

	if !hasReplica {
		store, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
		return store, primary.Close, storeErr
	}

	replica, err := pgxpool.NewWithConfig(ctx, replicaConfig)
	if err != nil {
		primary.Close()
		return nil, nil, fmt.Errorf("failed to create pgx pool for replica: %w", err)
	}

	closeBoth := func() {
		primary.Close()
		replica.Close()
	}

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)

	return store, closeBoth, err
}
