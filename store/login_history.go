package store

import (
	"context"
)

// LoginHistory is the object recording a successful login.
type LoginHistory struct {
	ID        int32
	UserID    int32
	Ts        int64
	IPAddress string
	UserAgent string
}

// FindLoginHistory is the find condition for login history.
type FindLoginHistory struct {
	UserID *int32

	Limit  *int
	Offset *int
}

// CreateLoginHistory records a login event.
func (s *Store) CreateLoginHistory(ctx context.Context, create *LoginHistory) (*LoginHistory, error) {
	return s.driver.CreateLoginHistory(ctx, create)
}

// ListLoginHistory lists login events with filter, newest first.
func (s *Store) ListLoginHistory(ctx context.Context, find *FindLoginHistory) ([]*LoginHistory, error) {
	return s.driver.ListLoginHistory(ctx, find)
}
