package ports

import (
	"context"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// SongRepository is the Content Store. Every mutation is a single-document
// atomic update; conditional variants report whether the guard matched.
type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) error
	FindByAudioID(ctx context.Context, audioID string) (*domain.Song, error)
	FindByUsername(ctx context.Context, username string) ([]*domain.Song, error)
	// Search returns songs whose title or uploader contains term.
	Search(ctx context.Context, term string) ([]*domain.Song, error)
	// LikedBy returns the audio ids of every song username has liked.
	LikedBy(ctx context.Context, username string) ([]string, error)
	Exists(ctx context.Context, audioID string) (bool, error)

	// IncrementListens adds one listen and returns the updated song.
	IncrementListens(ctx context.Context, audioID string) (*domain.Song, error)

	// AddLike adds username to the like set only if absent. applied is false
	// when the song is missing or already liked by username.
	AddLike(ctx context.Context, audioID, username string) (song *domain.Song, applied bool, err error)
	// RemoveLike removes username from the like set only if present.
	RemoveLike(ctx context.Context, audioID, username string) (song *domain.Song, applied bool, err error)

	PushComment(ctx context.Context, audioID string, comment domain.Comment) error
	PullComment(ctx context.Context, audioID, commentID string) error
}
