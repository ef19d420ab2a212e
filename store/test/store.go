package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/speaknote/remind/internal/profile"
	"github.com/speaknote/remind/store"
	"github.com/speaknote/remind/store/db"
)

func getDriverFromEnv() string {
	driver := os.Getenv("SPEAKNOTE_DRIVER")
	if driver == "" {
		driver = "sqlite"
	}
	return driver
}

// NewTestingStore opens a migrated store for tests. The driver is chosen
// by SPEAKNOTE_DRIVER; the default is a throwaway SQLite file.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:   "dev",
		Driver: getDriverFromEnv(),
	}
	switch p.Driver {
	case "sqlite":
		p.Data = t.TempDir()
		p.DSN = filepath.Join(p.Data, "speaknote_test.db")
	case "postgres":
		p.DSN = GetPostgresDSN(t)
	default:
		t.Fatalf("unsupported test driver: %s", p.Driver)
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	ts := store.New(driver, p)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		if err := ts.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})

	return ts
}

func createTestingUser(ctx context.Context, ts *store.Store, email string) (*store.User, error) {
	return ts.CreateUser(ctx, &store.User{
		Email:          email,
		HashedPassword: "$2a$10$testhashtesthashtesthashte",
		FullName:       "Test User",
	})
}
