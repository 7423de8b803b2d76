package ports

import (
	"context"

	"github.com/gamevault/storefront-api/internal/core/domain"
)

// TokenService issues and verifies signed bearer tokens binding a request to
// a user id.
type TokenService interface {
	// Issue produces a signed token encoding the user id as subject.
	Issue(userID string) (string, error)
	// Verify returns the encoded user id, or domain.ErrInvalidToken when the
	// token is malformed, mis-signed, or expired. Side-effect free.
	Verify(token string) (string, error)
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned by both Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
