package ports

import "context"

// PlaybackEvent records that a user started listening to a song.
type PlaybackEvent struct {
	Username string
	AudioID  string
}

// PlaybackService applies playback side effects outside the request path.
type PlaybackService interface {
	Process(ctx context.Context, event PlaybackEvent) error
}

// PlaybackRecorder accepts playback events for asynchronous processing.
type PlaybackRecorder interface {
	Record(event PlaybackEvent)
}
