package test

import (
	"os"
	"testing"
)

// GetPostgresDSN returns a DSN for PostgreSQL testing. Postgres driver
// tests need a real database; point POSTGRES_TEST_DSN at one, otherwise
// the test is skipped and the suite runs against SQLite only.
func GetPostgresDSN(t *testing.T) string {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN is not set")
	}
	return dsn
}
