package ports

import (
	"context"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// UserRepository is the Credential Store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindBySession returns the user whose session set contains token.
	FindBySession(ctx context.Context, token string) (*domain.User, error)
	// FindFirstMatching returns the first user whose username contains term.
	FindFirstMatching(ctx context.Context, term string) (*domain.User, error)
	AddSession(ctx context.Context, username, token string) error
	// RemoveSession pulls token from the user's session set. Removing an
	// absent token is not an error.
	RemoveSession(ctx context.Context, username, token string) error
	SetLastPlayed(ctx context.Context, username, audioID string) error
}

// RecordLabelRepository reads label profiles attached to artists.
type RecordLabelRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.RecordLabel, error)
}

// SessionCache fronts FindBySession. Implementations may be lossy; a miss
// always falls back to the Credential Store.
type SessionCache interface {
	// Get returns domain.ErrSessionRevoked for a token revoked by Revoke.
	Get(ctx context.Context, token string) (username string, found bool, err error)
	// Set fills the entry only if the key is absent, so a lookup that raced
	// a logout cannot overwrite the revocation.
	Set(ctx context.Context, token, username string) error
	// Revoke replaces the entry with a revocation marker that outlives any
	// entry filled before it.
	Revoke(ctx context.Context, token string) error
}
