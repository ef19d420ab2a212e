package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/speaknote/remind/store"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	user, err := createTestingUser(ctx, ts, "alice@example.com")
	require.NoError(t, err)
	require.Greater(t, user.ID, int32(0))
	require.NotZero(t, user.CreatedTs)

	// Lookup by email.
	email := "alice@example.com"
	found, err := ts.GetUser(ctx, &store.FindUser{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)
	require.Equal(t, "Test User", found.FullName)

	// Missing user yields nil, not an error.
	missing := "nobody@example.com"
	found, err = ts.GetUser(ctx, &store.FindUser{Email: &missing})
	require.NoError(t, err)
	require.Nil(t, found)

	// Duplicate email is rejected by the unique constraint.
	_, err = createTestingUser(ctx, ts, "alice@example.com")
	require.Error(t, err)

	// Update full name and OTP state.
	fullName := "Alice Smith"
	otpHash := "hashed-otp"
	otpExpires := int64(1750000000)
	updated, err := ts.UpdateUser(ctx, &store.UpdateUser{
		ID:           user.ID,
		FullName:     &fullName,
		OTPHash:      &otpHash,
		OTPExpiresTs: &otpExpires,
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", updated.FullName)
	require.Equal(t, "hashed-otp", updated.OTPHash)
	require.Equal(t, otpExpires, updated.OTPExpiresTs)

	// Clearing the OTP hash invalidates the pending code.
	empty := ""
	updated, err = ts.UpdateUser(ctx, &store.UpdateUser{ID: user.ID, OTPHash: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.OTPHash)
}

func TestLoginHistoryStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	user, err := createTestingUser(ctx, ts, "bob@example.com")
	require.NoError(t, err)

	for i, ts64 := range []int64{1700000100, 1700000300, 1700000200} {
		_, err := ts.CreateLoginHistory(ctx, &store.LoginHistory{
			UserID:    user.ID,
			Ts:        ts64,
			IPAddress: "10.0.0.1",
			UserAgent: "test-agent",
		})
		require.NoError(t, err, "entry %d", i)
	}

	// Newest first.
	list, err := ts.ListLoginHistory(ctx, &store.FindLoginHistory{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, int64(1700000300), list[0].Ts)
	require.Equal(t, int64(1700000100), list[2].Ts)

	limit := 1
	list, err = ts.ListLoginHistory(ctx, &store.FindLoginHistory{UserID: &user.ID, Limit: &limit})
	require.NoError(t, err)
	require.Len(t, list, 1)
}
