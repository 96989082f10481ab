package config

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresPGXPoolConfig creates a pgxpool.Config for the primary database.
func PostgresPGXPoolConfig() (*pgxpool.Config, error) {
	return pgxPoolConfig(PostgresDSN())
}

// PostgresPGXPoolReplicaConfig creates a pgxpool.Config for the replica database.
// The second return value is false if no replica is configured.
func PostgresPGXPoolReplicaConfig() (*pgxpool.Config, bool, error) {
	dsn, ok := PostgresReplicaDSN()
	if !ok {
		return nil, false, nil
	}

	dbConfig, err := pgxPoolConfig(dsn)

	return dbConfig, true, err
}

func pgxPoolConfig(dsn string) (*pgxpool.Config, error) {
	const defaultMaxConnections = int32(8)
	const defaultMinConnections = int32(2)
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5
	const defaultHealthCheckPeriod = time.Minute
	const defaultConnectTimeout = time.Second * 5

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parsing the postgres dsn failed")
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}
