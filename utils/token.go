package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceBlob    = "blob"
	audienceSession = "session"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateBlobToken signs read access to a single storage path until ttl elapses.
func GenerateBlobToken(secret string, path string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   path,
		Audience:  jwt.ClaimStrings{audienceBlob},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseBlobToken returns the storage path a token grants access to.
func ParseBlobToken(secret string, token string, now time.Time) (string, error) {
	claims, err := parse(secret, token, audienceBlob, now)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GenerateSessionToken signs a session identifier for the session cookie.
// Session tokens carry no expiry; the cookie lifetime bounds them.
func GenerateSessionToken(secret string, sessionID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  sessionID,
		Audience: jwt.ClaimStrings{audienceSession},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseSessionToken(secret string, token string) (string, error) {
	claims, err := parse(secret, token, audienceSession, time.Now())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func parse(secret string, token string, audience string, now time.Time) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
