package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// Issuer identifies tokens minted by this server.
	Issuer = "speaknote"

	// DefaultAccessTTL is how long an access token stays valid.
	DefaultAccessTTL = 24 * time.Hour
)

// Claims is the decoded content of an access token.
type Claims struct {
	UserID    int32
	Email     string
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenManager creates a token manager. A zero accessTTL falls back
// to DefaultAccessTTL.
func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	if accessTTL == 0 {
		accessTTL = DefaultAccessTTL
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL}
}

// IssueAccessToken mints a signed token for the given user.
func (m *TokenManager) IssueAccessToken(userID int32, email string, now time.Time) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret not configured")
	}
	expiresAt := now.Add(m.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(userID), 10),
		Audience:  jwt.ClaimStrings{email},
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// ParseAccessToken verifies the signature and expiry of a token and
// returns its claims.
func (m *TokenManager) ParseAccessToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(Issuer))
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token subject")
	}
	email := ""
	if len(claims.Audience) > 0 {
		email = claims.Audience[0]
	}
	out := &Claims{UserID: int32(userID), Email: email}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
