package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenTTL extracts the remaining lifetime of the backend access token. The
// portal does not hold the auth server's signing key, so claims are read
// without signature verification and used only to bound the session TTL,
// never to authorize anything. Opaque tokens report no TTL.
func TokenTTL(tokenStr string, now time.Time) (time.Duration, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return 0, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}

	ttl := exp.Time.Sub(now)
	if ttl <= 0 {
		return 0, false
	}
	return ttl, true
}
