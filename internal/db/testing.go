package db

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CreateTestPool connects to the database named by TEST_POSTGRESQL_URL and
// applies migrations. Tests that need a database are skipped when the
// variable is not set.
func CreateTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	if err := ApplyMigrations(connString); err != nil {
		t.Fatalf("Could not apply DB migrations: %v.", err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		t.Fatalf("Could not connect to the database: %v.", err)
	}
	return pool
}

func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\" CASCADE")
	if err != nil {
		t.Fatalf("Could not truncate DB tables: %v.", err)
	}
}
