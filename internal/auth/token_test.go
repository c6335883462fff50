package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestTokenTTL(t *testing.T) {
	now := time.Now()

	tokenStr := signedToken(t, jwt.MapClaims{"exp": now.Add(10 * time.Minute).Unix()})
	ttl, ok := TokenTTL(tokenStr, now)
	if !ok {
		t.Fatal("expected a ttl")
	}
	if ttl < 9*time.Minute || ttl > 10*time.Minute {
		t.Fatalf("unexpected ttl: %v", ttl)
	}
}

func TestTokenTTLExpired(t *testing.T) {
	now := time.Now()
	tokenStr := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
	if _, ok := TokenTTL(tokenStr, now); ok {
		t.Fatal("expired token should report no ttl")
	}
}

func TestTokenTTLOpaqueToken(t *testing.T) {
	if _, ok := TokenTTL("not-a-jwt-at-all", time.Now()); ok {
		t.Fatal("opaque token should report no ttl")
	}
}

func TestTokenTTLNoExpClaim(t *testing.T) {
	tokenStr := signedToken(t, jwt.MapClaims{"sub": "42"})
	if _, ok := TokenTTL(tokenStr, time.Now()); ok {
		t.Fatal("token without exp should report no ttl")
	}
}
