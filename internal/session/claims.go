// ABOUTME: Reads display-only claims from a session token without verifying it
// ABOUTME: Admission never depends on these; the backend is the only judge of validity

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken means the token is not a decodable JWT
var ErrOpaqueToken = errors.New("token is opaque")

// Claims is what the résumé service puts in its tokens
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Inspect decodes token's claims without checking the signature
func Inspect(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}
	return claims, nil
}

// ExpiresIn returns the time left before expiry, if the token carries one
func (c *Claims) ExpiresIn(now time.Time) (time.Duration, bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Time.Sub(now), true
}
