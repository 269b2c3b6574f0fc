package ports

import (
	"context"

	"github.com/vendhub/vending-machine/internal/core/domain"
)

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies username/password and returns a signed token plus the
	// authenticated user. Fails with domain.ErrInvalidCredentials on any
	// mismatch (unknown username is not distinguished from a bad password).
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
