package ports

import (
	"context"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// Session is what signup and login hand back to the transport layer.
type Session struct {
	Token string
	User  *domain.User
}

// Identity is the resolved caller attached to an authenticated request.
type Identity struct {
	Username string
	Token    string
}

type AuthService interface {
	Signup(ctx context.Context, username, password, email string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, id Identity) error
	// Authenticate resolves a session token to its owner. Returns
	// domain.ErrSessionNotFound for empty or unknown tokens.
	Authenticate(ctx context.Context, token string) (Identity, error)
}
