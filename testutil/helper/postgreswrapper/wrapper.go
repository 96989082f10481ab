package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/catalog/postgresengine"
	"github.com/AntonStoeckl/library-catalog-go/library/shared/shell/config"
)

// Adapter type constants
const (
	EnvAdapterType = "ADAPTER_TYPE"

	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	connectTimeout = 3 * time.Second
)

// Wrapper abstracts over the different connection types.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Exec(ctx context.Context, statement string) error
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing, optionally with a second pool acting as replica.
type PGXPoolWrapper struct {
	pool        *pgxpool.Pool
	replicaPool *pgxpool.Pool
	store       *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.pool.Exec(ctx, statement)
	return err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()

	if w.replicaPool != nil {
		w.replicaPool.Close()
	}
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // nothing to do about it in a test
}

// SQLXWrapper wraps sqlx.DB-based testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Exec(ctx context.Context, statement string) error {
	_, err := w.db.ExecContext(ctx, statement)
	return err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // nothing to do about it in a test
}

// CreateWrapperWithTestConfig creates the wrapper selected by ADAPTER_TYPE and makes sure the schema exists.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var wrapper Wrapper

	switch adapterType := strings.ToLower(os.Getenv(EnvAdapterType)); adapterType {
	case typePGXPool, "":
		pool := connectPGXPool(t, ctx)
		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating the store")
		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.PostgresSQLDB(ctx)
		skipIfUnreachable(t, err)
		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the store")
		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db, err := config.PostgresSQLX(ctx)
		skipIfUnreachable(t, err)
		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the store")
		wrapper = &SQLXWrapper{db: db, store: store}

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}

	require.NoError(t, wrapper.GetStore().CreateSchema(ctx), "error creating the schema")

	return wrapper
}

// CreateReplicaWrapperWithTestConfig creates a pgx wrapper whose store routes eventually consistent reads
// to a second pool. Without LIBRARY_POSTGRES_REPLICA_DSN, the second pool points at the primary.
func CreateReplicaWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) *PGXPoolWrapper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool := connectPGXPool(t, ctx)

	replicaConfig, ok, err := config.PostgresPGXPoolReplicaConfig()
	require.NoError(t, err, "error parsing the replica config")

	if !ok {
		replicaConfig, err = config.PostgresPGXPoolConfig()
		require.NoError(t, err, "error parsing the primary config")
	}

	replicaPool, err := pgxpool.NewWithConfig(ctx, replicaConfig)
	require.NoError(t, err, "error creating the replica pool")

	store, err := postgresengine.NewStoreFromPGXPoolAndReplica(pool, replicaPool, options...)
	require.NoError(t, err, "error creating the store")
	require.NoError(t, store.CreateSchema(ctx), "error creating the schema")

	return &PGXPoolWrapper{pool: pool, replicaPool: replicaPool, store: store}
}

// CleanUp empties both tables of the wrapper's store and restarts their identities.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	store := wrapper.GetStore()
	statement := fmt.Sprintf(
		"TRUNCATE TABLE %s, %s RESTART IDENTITY CASCADE",
		pgx.Identifier{store.BorrowRecordsTableName()}.Sanitize(),
		pgx.Identifier{store.BooksTableName()}.Sanitize(),
	)

	require.NoError(t, wrapper.Exec(context.Background(), statement), "error cleaning up the tables")
}

func connectPGXPool(t testing.TB, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	poolConfig, err := config.PostgresPGXPoolConfig()
	require.NoError(t, err, "error parsing the pool config")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err, "error creating the pool")

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		skipIfUnreachable(t, pingErr)
	}

	return pool
}

func skipIfUnreachable(t testing.TB, err error) {
	t.Helper()

	if err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}
}
