// Package token implements issuance and parsing of signed bearer tokens.
// The codec is pure and stateless given the signing key; all shared state
// (the revocation registry) lives elsewhere.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devops25/userauth/internal/common"
)

// Claims is the lightweight identity carried inside a token. It is distinct
// from the stored credential record: the two share only the username, which
// travels as the registered Subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	return c.Subject
}

// Codec signs and verifies bearer tokens with a process-wide HMAC key and a
// fixed TTL applied uniformly to every issued token.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue builds claims for the given subject, signs them with HS256, and
// returns the compact token string alongside the claims. Every token gets a
// unique jti, so two tokens for the same subject never compare equal.
func (c *Codec) Issue(subject string, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// Parse verifies structure, signature, and expiry of a token, evaluated at
// the supplied time. Failures map onto the sentinel taxonomy in
// internal/common: ErrMalformedToken, ErrBadSignature, ErrTokenExpired.
func (c *Codec) Parse(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, common.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrBadSignature
		default:
			return nil, common.ErrBadSignature
		}
	}
	if !parsed.Valid {
		return nil, common.ErrBadSignature
	}

	return claims, nil
}

// ExtractSubject reads the subject claim without verifying the signature.
// Intended for display and logging paths only; never use the result as an
// authentication decision.
func (c *Codec) ExtractSubject(tokenString string) (string, error) {
	claims, err := c.decodeUnverified(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiry reads the expiry claim without verifying the signature.
// Used on logout, where revocation must work for tokens that can no longer
// pass full validation. A token without an expiry claim is given the full
// TTL from now, the longest it could possibly remain valid.
func (c *Codec) ExtractExpiry(tokenString string, now time.Time) (time.Time, error) {
	claims, err := c.decodeUnverified(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return now.Add(c.ttl), nil
	}
	return claims.ExpiresAt.Time, nil
}

func (c *Codec) decodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, common.ErrMalformedToken
	}
	return claims, nil
}
