package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidInput       = errors.New("invalid input")

	ErrRecordLabelNotFound = errors.New("record label not found")
)

// Roles are independent flags; a user may hold any combination.
type Roles struct {
	Admin       bool `json:"admin"`
	Moderator   bool `json:"moderator"`
	RecordLabel bool `json:"record_label"`
}

// User models an account together with its currently valid session tokens.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	PasswordHash   string    `json:"-"`
	Roles          Roles     `json:"roles"`
	SessionIDs     []string  `json:"-"`
	LastPlayedSong string    `json:"last_played_song,omitempty"`
	ProfilePic     string    `json:"profile_pic,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasSession reports whether token is one of the user's active sessions.
func (u *User) HasSession(token string) bool {
	for _, s := range u.SessionIDs {
		if s == token {
			return true
		}
	}
	return false
}

// RecordLabel is the label profile attached to an artist account.
type RecordLabel struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}
