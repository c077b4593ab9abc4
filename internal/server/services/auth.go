// Package services contains the server-side business logic: turning login
// attempts into tokens (AuthService) and bearer tokens into identities
// (SessionService).
package services

import (
	"context"
	"errors"
	"time"

	"github.com/devops25/userauth/internal/common"
	"github.com/devops25/userauth/internal/logging"
	"github.com/devops25/userauth/internal/server/models"
	"github.com/devops25/userauth/internal/server/password"
	"github.com/devops25/userauth/internal/server/repositories/users"
	"github.com/devops25/userauth/internal/server/token"
)

// RegisterResult reports the outcome of a registration attempt. A taken
// username is a normal outcome, not an error: callers get AlreadyExists
// instead of a rejection so the response shape stays uniform.
type RegisterResult struct {
	Message       string
	Username      string
	AlreadyExists bool
}

// AuthResult bundles the authenticated username with a freshly issued token.
type AuthResult struct {
	Username string
	Token    string
}

// AuthService composes the credential store, the password hasher, and the
// token codec to authenticate users and mint tokens.
type AuthService struct {
	users  users.Repository
	hasher password.Hasher
	codec  *token.Codec
	log    logging.Logger
}

func NewAuthService(repo users.Repository, hasher password.Hasher, codec *token.Codec, log logging.Logger) *AuthService {
	return &AuthService{
		users:  repo,
		hasher: hasher,
		codec:  codec,
		log:    log.With("module", "auth_service"),
	}
}

// Register creates a new user with a hashed password. Missing username or
// password yields ErrInvalidRequest. An existing username yields a result
// with AlreadyExists set and leaves the store untouched.
func (s *AuthService) Register(ctx context.Context, username, plaintext, university string) (*RegisterResult, error) {
	if username == "" || plaintext == "" {
		return nil, common.ErrInvalidRequest
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return &RegisterResult{Message: "Username already exists", AlreadyExists: true}, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		s.log.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, PasswordHash: hash, University: university}
	if _, err := s.users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent registration for the same name.
		if errors.Is(err, common.ErrorAlreadyExists) {
			return &RegisterResult{Message: "Username already exists", AlreadyExists: true}, nil
		}
		s.log.Error(ctx, "user creation failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "username", username)
	return &RegisterResult{Message: "Registration successful", Username: username}, nil
}

// Authenticate verifies the credentials and issues a token. Unknown
// username and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, plaintext string) (*AuthResult, error) {
	if username == "" || plaintext == "" {
		return nil, common.ErrInvalidRequest
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "login failed: unknown user", "username", username)
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if err := s.hasher.Verify(plaintext, user.PasswordHash); err != nil {
		s.log.Warn(ctx, "login failed: wrong password", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	tokenString, _, err := s.codec.Issue(user.Username, time.Now())
	if err != nil {
		s.log.Error(ctx, "token issuance failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "login successful", "username", username)
	return &AuthResult{Username: user.Username, Token: tokenString}, nil
}
