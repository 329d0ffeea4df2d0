package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zanith/zanith-api/internal/core/ports"
)

type playbackService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

// NewPlaybackService returns a PlaybackService that keeps each user's
// last played song current.
func NewPlaybackService(users ports.UserRepository, log zerolog.Logger) ports.PlaybackService {
	return &playbackService{users: users, log: log}
}

func (s *playbackService) Process(ctx context.Context, ev ports.PlaybackEvent) error {
	if ev.Username == "" || ev.AudioID == "" {
		return nil
	}
	if err := s.users.SetLastPlayed(ctx, ev.Username, ev.AudioID); err != nil {
		return fmt.Errorf("process playback: %w", err)
	}
	s.log.Debug().Str("username", ev.Username).Str("song", ev.AudioID).Msg("last played song updated")
	return nil
}
