package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims extracts the subject and expiry from an access token without
// verifying the signature. Returns zero values for anything unreadable.
func tokenClaims(raw string) (string, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return "", time.Time{}
	}

	subject, _ := claims.GetSubject()

	var expires time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expires = exp.Time
	}
	return subject, expires
}
