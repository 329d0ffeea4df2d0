package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zanith/zanith-api/internal/api/metrics"
	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

// maxToggleAttempts bounds the retries when a concurrent toggle flips the
// like set between the remove and add attempts.
const maxToggleAttempts = 3

type SongService struct {
	songs          ports.SongRepository
	users          ports.UserRepository
	labels         ports.RecordLabelRepository
	playback       ports.PlaybackRecorder
	activity       ports.ActivityPublisher
	featuredArtist string
	log            zerolog.Logger
	now            func() time.Time
}

func NewSongService(
	songs ports.SongRepository,
	users ports.UserRepository,
	labels ports.RecordLabelRepository,
	playback ports.PlaybackRecorder,
	activity ports.ActivityPublisher,
	featuredArtist string,
	log zerolog.Logger,
) *SongService {
	return &SongService{
		songs:          songs,
		users:          users,
		labels:         labels,
		playback:       playback,
		activity:       activity,
		featuredArtist: featuredArtist,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Home lists the featured artist's songs.
func (s *SongService) Home(ctx context.Context, viewer string) (*ports.SongFeed, error) {
	return s.feed(ctx, viewer, func() ([]*domain.Song, error) {
		return s.songs.FindByUsername(ctx, s.featuredArtist)
	})
}

func (s *SongService) Profile(ctx context.Context, artist, viewer string) (*ports.ProfileResult, error) {
	feed, err := s.feed(ctx, viewer, func() ([]*domain.Song, error) {
		return s.songs.FindByUsername(ctx, artist)
	})
	if err != nil {
		return nil, err
	}

	result := &ports.ProfileResult{SongFeed: *feed}
	label, err := s.labels.FindByUsername(ctx, artist)
	switch {
	case err == nil:
		result.RecordLabel = label.Name
	case !errors.Is(err, domain.ErrRecordLabelNotFound):
		return nil, fmt.Errorf("profile: %w", err)
	}
	return result, nil
}

func (s *SongService) Get(ctx context.Context, audioID string) (*domain.Song, error) {
	return s.songs.FindByAudioID(ctx, audioID)
}

func (s *SongService) Search(ctx context.Context, term, viewer string) (*ports.SearchResult, error) {
	if term == "" {
		return nil, domain.ErrInvalidInput
	}

	feed, err := s.feed(ctx, viewer, func() ([]*domain.Song, error) {
		return s.songs.Search(ctx, term)
	})
	if err != nil {
		return nil, err
	}

	result := &ports.SearchResult{SongFeed: *feed}
	artist, err := s.users.FindFirstMatching(ctx, term)
	switch {
	case err == nil:
		result.Artist = artist.Username
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("search: %w", err)
	}
	return result, nil
}

// Listen counts one play and returns the new total.
func (s *SongService) Listen(ctx context.Context, username, audioID string) (int64, error) {
	song, err := s.songs.IncrementListens(ctx, audioID)
	if err != nil {
		return 0, err
	}
	metrics.ListensTotal.Inc()
	s.playback.Record(ports.PlaybackEvent{Username: username, AudioID: audioID})
	return song.Listens, nil
}

// ToggleLike flips username's membership in the song's like set. Each step
// is a conditional update, so two concurrent toggles can never both add.
func (s *SongService) ToggleLike(ctx context.Context, username, audioID string) (*ports.LikeResult, error) {
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		song, removed, err := s.songs.RemoveLike(ctx, audioID, username)
		if err != nil {
			return nil, fmt.Errorf("toggle like: %w", err)
		}
		if removed {
			metrics.LikesToggledTotal.WithLabelValues("unlike").Inc()
			s.publish(ctx, ports.ActivityUnliked, username, audioID)
			return &ports.LikeResult{Likes: song.LikeCount(), NewLike: false}, nil
		}

		song, added, err := s.songs.AddLike(ctx, audioID, username)
		if err != nil {
			return nil, fmt.Errorf("toggle like: %w", err)
		}
		if added {
			metrics.LikesToggledTotal.WithLabelValues("like").Inc()
			s.publish(ctx, ports.ActivityLiked, username, audioID)
			return &ports.LikeResult{Likes: song.LikeCount(), NewLike: true}, nil
		}

		exists, err := s.songs.Exists(ctx, audioID)
		if err != nil {
			return nil, fmt.Errorf("toggle like: %w", err)
		}
		if !exists {
			return nil, domain.ErrSongNotFound
		}
		s.log.Debug().Str("song", audioID).Str("username", username).Int("attempt", attempt).Msg("like toggle raced, retrying")
	}
	return nil, fmt.Errorf("toggle like: too much contention on song %s", audioID)
}

// AddComment appends a comment. Blank text is rejected before any write.
func (s *SongService) AddComment(ctx context.Context, in ports.AddCommentInput) (*domain.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	comment := domain.Comment{
		ID:       in.ID,
		Username: in.Username,
		Text:     text,
		Date:     s.now(),
	}
	if err := s.songs.PushComment(ctx, in.AudioID, comment); err != nil {
		return nil, err
	}

	metrics.CommentsTotal.WithLabelValues("add").Inc()
	s.publish(ctx, ports.ActivityCommented, in.Username, in.AudioID)
	return &comment, nil
}

// DeleteComment removes the comment with commentID. A missing comment is a
// no-op; a missing song is domain.ErrSongNotFound.
func (s *SongService) DeleteComment(ctx context.Context, audioID, commentID string) error {
	if err := s.songs.PullComment(ctx, audioID, commentID); err != nil {
		return err
	}
	metrics.CommentsTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *SongService) feed(ctx context.Context, viewer string, load func() ([]*domain.Song, error)) (*ports.SongFeed, error) {
	songs, err := load()
	if err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}
	liked, err := s.songs.LikedBy(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	return &ports.SongFeed{Songs: songs, Liked: liked}, nil
}

func (s *SongService) publish(ctx context.Context, kind, username, audioID string) {
	publishActivity(ctx, s.activity, s.log, ports.ActivityEvent{
		Kind:     kind,
		Username: username,
		AudioID:  audioID,
		At:       s.now(),
	})
}
