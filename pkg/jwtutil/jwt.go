package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token that is not currently valid.
var ErrInvalidToken = errors.New("invalid or expired token")

// JWTUtil issues and validates HS256 session tokens that carry a subject.
type JWTUtil struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a JWTUtil.
type Option func(*JWTUtil)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(j *JWTUtil) {
		j.now = now
	}
}

// New creates a JWT utility. The signing key is mandatory.
func New(signingKey string, ttl time.Duration, opts ...Option) (*JWTUtil, error) {
	if signingKey == "" {
		return nil, errors.New("JWT signing key not provided")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token lifetime %s", ttl)
	}
	j := &JWTUtil{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// TTL returns the default token lifetime.
func (j *JWTUtil) TTL() time.Duration {
	return j.ttl
}

// Issue creates a token for subject using the default lifetime.
func (j *JWTUtil) Issue(subject string) (string, error) {
	return j.IssueWithTTL(subject, j.ttl)
}

// IssueWithTTL creates a token for subject that expires after ttl.
func (j *JWTUtil) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// Validate verifies the token and returns its subject.
func (j *JWTUtil) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
