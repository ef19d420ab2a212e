package store

import (
	"context"

	"github.com/pkg/errors"
)

// User is the object representing a registered account.
type User struct {
	ID             int32
	Email          string
	HashedPassword string
	FullName       string
	CreatedTs      int64
	UpdatedTs      int64

	// One-time login code state. OTPHash is empty when no code is pending.
	OTPHash      string
	OTPExpiresTs int64
}

// FindUser is the find condition for user.
type FindUser struct {
	ID    *int32
	Email *string

	Limit  *int
	Offset *int
}

// UpdateUser is the update request for user.
type UpdateUser struct {
	ID             int32
	Email          *string
	HashedPassword *string
	FullName       *string
	OTPHash        *string
	OTPExpiresTs   *int64
	UpdatedTs      *int64
}

// CreateUser creates a new user.
func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

// ListUsers lists users with filter.
func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser gets a single user matching the find condition.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	list, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateUser updates a user.
func (s *Store) UpdateUser(ctx context.Context, update *UpdateUser) (*User, error) {
	if update.ID == 0 {
		return nil, errors.New("user id is required")
	}
	return s.driver.UpdateUser(ctx, update)
}
