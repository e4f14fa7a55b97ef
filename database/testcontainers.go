package database

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tclog "github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type nopLogger struct{}

func (*nopLogger) Printf(_ string, _ ...any) {}

var _ tclog.Logger = (*nopLogger)(nil)

var (
	dbName = "testdb"
	dbUser = "testuser"
	dbPass = "testpass"
)

// startPostgres starts a throwaway Postgres container and returns its
// connection string
func startPostgres(t *testing.T) (string, func()) {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		postgres.BasicWaitStrategies(),
		tc.WithLogger(&nopLogger{}),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cleanupFunc := func() {
		tc.CleanupContainer(t, postgresContainer)
	}
	return connStr, cleanupFunc
}

// migrationURL rewrites a postgres:// connection string to the pgx5:// form
// the migration driver registers under
func migrationURL(connStr string) string {
	return strings.Replace(connStr, "postgres://", "pgx5://", 1)
}

// SetupTestDB creates a Postgres container using testcontainers and runs the
// embedded migrations, including a full rollback and re-apply
func SetupTestDB(t *testing.T) (*pgx.Conn, func()) {
	t.Helper()

	ctx := context.Background()

	connStr, containerCleanup := startPostgres(t)

	m, err := NewFromConnectionString(migrationURL(connStr))
	require.NoError(t, err)

	// Run migrations, roll everything back, and reapply
	require.NoError(t, m.Up())
	require.NoError(t, m.Down())
	require.NoError(t, m.Up())

	db, err := pgx.Connect(ctx, connStr)
	require.NoError(t, err)

	cleanupFunc := func() {
		_ = db.Close(ctx)
		containerCleanup()
	}

	return db, cleanupFunc
}
