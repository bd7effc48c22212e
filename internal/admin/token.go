package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCookie holds the admin API access token.
const TokenCookie = "admin_token"

// DefaultTokenTTL applies when a token carries no exp claim.
const DefaultTokenTTL = 24 * time.Hour

// ErrTokenExpired is returned for tokens whose exp claim has passed.
var ErrTokenExpired = errors.New("admin: token expired")

// TokenExpiry reads the exp claim without verifying the signature; the
// admin API verifies every request. ok is false when there is no exp.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("admin: parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// CookieMaxAge is the cookie lifetime in seconds for token: the time left
// until exp, or DefaultTokenTTL for tokens without one. Opaque tokens also
// get DefaultTokenTTL.
func CookieMaxAge(token string, now time.Time) (int, error) {
	exp, ok, err := TokenExpiry(token)
	if err != nil || !ok {
		return int(DefaultTokenTTL / time.Second), nil
	}
	// Max-Age 0 would turn the cookie into a session cookie.
	left := exp.Sub(now)
	if left < time.Second {
		return 0, ErrTokenExpired
	}
	return int(left / time.Second), nil
}
