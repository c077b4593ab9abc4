// Package users implements the credential store: a lookup of stored
// credential records by username.
package users

import (
	"context"

	"github.com/devops25/userauth/internal/server/models"
)

type Repository interface {
	// Create persists a new user. Returns common.ErrorAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the stored record or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
