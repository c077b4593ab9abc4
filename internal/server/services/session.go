package services

import (
	"context"
	"time"

	"github.com/devops25/userauth/internal/common"
	"github.com/devops25/userauth/internal/logging"
	"github.com/devops25/userauth/internal/server/blacklist"
	"github.com/devops25/userauth/internal/server/token"
)

// SessionService composes the token codec and the revocation registry to
// validate bearer tokens on authenticated requests and to revoke them on
// logout.
type SessionService struct {
	codec   *token.Codec
	revoked *blacklist.Blacklist
	log     logging.Logger
}

func NewSessionService(codec *token.Codec, revoked *blacklist.Blacklist, log logging.Logger) *SessionService {
	return &SessionService{
		codec:   codec,
		revoked: revoked,
		log:     log.With("module", "session_service"),
	}
}

// Validate parses the token and checks it against the revocation registry.
// A token is valid only if its signature verifies, it has not expired, and
// it has not been revoked. On success the claims value is the identity for
// downstream request handling.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (*token.Claims, error) {
	claims, err := s.codec.Parse(tokenString, time.Now())
	if err != nil {
		return nil, err
	}

	if s.revoked.IsRevoked(tokenString) {
		s.log.Warn(ctx, "rejected revoked token", "username", claims.Username())
		return nil, common.ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes the presented token until its natural expiry. A malformed
// token is a no-op: there is nothing it could still authenticate, so
// revoking garbage succeeds silently.
func (s *SessionService) Logout(ctx context.Context, tokenString string) {
	expiry, err := s.codec.ExtractExpiry(tokenString, time.Now())
	if err != nil {
		s.log.Debug(ctx, "logout with undecodable token ignored")
		return
	}

	s.revoked.Revoke(tokenString, expiry)

	if subject, err := s.codec.ExtractSubject(tokenString); err == nil {
		s.log.Info(ctx, "token revoked", "username", subject)
	}
}
