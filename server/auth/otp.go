package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/pkg/errors"
)

// OTPTTL is how long a one-time login code stays valid.
const OTPTTL = 10 * time.Minute

const otpDigits = 6

// GenerateOTP returns a random 6-digit one-time code.
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate otp")
	}

	code := n.String()
	for len(code) < otpDigits {
		code = "0" + code
	}
	return code, nil
}

// HashOTP returns the stored form of a one-time code. Codes are short
// lived and low entropy, so a plain digest is enough here.
func HashOTP(otp string) string {
	sum := sha256.Sum256([]byte(otp))
	return hex.EncodeToString(sum[:])
}

// VerifyOTP reports whether the code matches the stored hash and has
// not expired.
func VerifyOTP(otp, storedHash string, expiresTs int64, now time.Time) bool {
	if storedHash == "" || now.Unix() >= expiresTs {
		return false
	}
	computed := HashOTP(otp)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
