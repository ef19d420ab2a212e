package store

import (
	"context"

	"github.com/pkg/errors"
)

// Migrate ensures the database schema exists. Each driver carries its
// own dialect-specific schema and applies it idempotently, so calling
// this on every startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.driver.Migrate(ctx); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}
	return nil
}
