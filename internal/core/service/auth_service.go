package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zanith/zanith-api/internal/api/metrics"
	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

// passwordCost is the bcrypt work factor applied to every stored password.
const passwordCost = 10

// AuthService implements signup, login, logout and session resolution.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionCache
	log      zerolog.Logger
	newToken func() string
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionCache, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
		newToken: func() string { return uuid.New().String() },
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password, email string) (*ports.Session, error) {
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}

	_, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	token := s.newToken()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		SessionIDs:   []string{token},
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	s.log.Info().Str("username", username).Msg("user signed up")
	return &ports.Session{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token := s.newToken()
	if err := s.users.AddSession(ctx, user.Username, token); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	user.SessionIDs = append(user.SessionIDs, token)

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("username", username).Int("sessions", len(user.SessionIDs)).Msg("user logged in")
	return &ports.Session{Token: token, User: user}, nil
}

// Logout revokes id.Token. Revoking an already revoked token succeeds.
// The token leaves the store first and is then marked revoked in the cache,
// so a lookup that read the store before the logout cannot re-cache it.
func (s *AuthService) Logout(ctx context.Context, id ports.Identity) error {
	if err := s.users.RemoveSession(ctx, id.Username, id.Token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.sessions.Revoke(ctx, id.Token); err != nil {
		s.log.Warn().Err(err).Str("username", id.Username).Msg("session cache revoke failed")
	}
	s.log.Info().Str("username", id.Username).Msg("user logged out")
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (ports.Identity, error) {
	if token == "" {
		return ports.Identity{}, domain.ErrSessionNotFound
	}

	username, found, err := s.sessions.Get(ctx, token)
	switch {
	case errors.Is(err, domain.ErrSessionRevoked):
		metrics.SessionLookupsTotal.WithLabelValues("rejected").Inc()
		return ports.Identity{}, domain.ErrSessionNotFound
	case err != nil:
		s.log.Warn().Err(err).Msg("session cache lookup failed, falling back to store")
	case found:
		metrics.SessionLookupsTotal.WithLabelValues("cache").Inc()
		return ports.Identity{Username: username, Token: token}, nil
	}

	user, err := s.users.FindBySession(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.SessionLookupsTotal.WithLabelValues("rejected").Inc()
			return ports.Identity{}, domain.ErrSessionNotFound
		}
		return ports.Identity{}, fmt.Errorf("authenticate: %w", err)
	}
	metrics.SessionLookupsTotal.WithLabelValues("store").Inc()

	if err := s.sessions.Set(ctx, token, user.Username); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("session cache fill failed")
	}
	return ports.Identity{Username: user.Username, Token: token}, nil
}
