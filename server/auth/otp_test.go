package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		assert.Len(t, otp, 6)
		assert.Regexp(t, `^\d{6}$`, otp)
		seen[otp] = true
	}
	// 20 draws from a million values colliding down to one code would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestVerifyOTP(t *testing.T) {
	now := time.Now()
	otp := "123456"
	hash := HashOTP(otp)
	expires := now.Add(OTPTTL).Unix()

	assert.True(t, VerifyOTP(otp, hash, expires, now))
	assert.False(t, VerifyOTP("654321", hash, expires, now), "wrong code")
	assert.False(t, VerifyOTP(otp, hash, expires, now.Add(OTPTTL+time.Second)), "expired")
	assert.False(t, VerifyOTP(otp, "", expires, now), "no pending code")
	assert.False(t, VerifyOTP(otp, hash, now.Unix(), now), "expiry boundary is exclusive")
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2!", hash)

	assert.True(t, VerifyPassword(hash, "hunter2!"))
	assert.False(t, VerifyPassword(hash, "hunter3!"))
	assert.False(t, VerifyPassword("", "hunter2!"))
}
