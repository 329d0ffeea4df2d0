package ports

import (
	"context"
	"time"
)

// Activity kinds published after a successful mutation.
const (
	ActivityUploaded  = "uploaded"
	ActivityLiked     = "liked"
	ActivityUnliked   = "unliked"
	ActivityCommented = "commented"
)

// ActivityEvent describes something a user did to a song.
type ActivityEvent struct {
	Kind     string
	Username string
	AudioID  string
	At       time.Time
}

// ActivityPublisher fans activity out to external consumers. Delivery is
// best effort; a failed publish never fails the request.
type ActivityPublisher interface {
	Publish(ctx context.Context, event ActivityEvent) error
}
