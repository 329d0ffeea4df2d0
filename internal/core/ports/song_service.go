package ports

import (
	"context"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// SongFeed is a list of songs plus the audio ids the viewer has liked.
type SongFeed struct {
	Songs []*domain.Song
	Liked []string
}

// ProfileResult is an artist page as seen by the viewer.
type ProfileResult struct {
	SongFeed
	RecordLabel string
}

// SearchResult holds the matching songs and the first matching artist name
// (empty when no user matched).
type SearchResult struct {
	SongFeed
	Artist string
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Likes   int
	NewLike bool
}

// AddCommentInput carries a new comment. ID is supplied by the client.
type AddCommentInput struct {
	Username string
	AudioID  string
	ID       string
	Text     string
}

type SongService interface {
	Home(ctx context.Context, viewer string) (*SongFeed, error)
	Profile(ctx context.Context, artist, viewer string) (*ProfileResult, error)
	Get(ctx context.Context, audioID string) (*domain.Song, error)
	Search(ctx context.Context, term, viewer string) (*SearchResult, error)
	Listen(ctx context.Context, username, audioID string) (int64, error)
	ToggleLike(ctx context.Context, username, audioID string) (*LikeResult, error)
	AddComment(ctx context.Context, in AddCommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, audioID, commentID string) error
}
