package service

import (
	"context"
	"crypto/subtle"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/zanith/zanith-api/internal/api/metrics"
	"github.com/zanith/zanith-api/internal/core/domain"
	"github.com/zanith/zanith-api/internal/core/ports"
)

// RequestSigner abstracts the media host's request signing scheme.
type RequestSigner interface {
	Sign(params map[string]string) string
	CloudName() string
	APIKey() string
}

type UploadService struct {
	songs    ports.SongRepository
	signer   RequestSigner
	activity ports.ActivityPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewUploadService(songs ports.SongRepository, signer RequestSigner, activity ports.ActivityPublisher, log zerolog.Logger) *UploadService {
	return &UploadService{
		songs:    songs,
		signer:   signer,
		activity: activity,
		log:      log,
		now:      time.Now,
	}
}

// Signature issues the parameters a client needs to upload straight to the
// media host.
func (s *UploadService) Signature(_ context.Context, username string) (*ports.UploadSignature, error) {
	ts := s.now().Unix()
	return &ports.UploadSignature{
		Timestamp: ts,
		Signature: s.signer.Sign(map[string]string{"timestamp": strconv.FormatInt(ts, 10)}),
		Username:  username,
		CloudName: s.signer.CloudName(),
		APIKey:    s.signer.APIKey(),
	}, nil
}

// Upload records a song only when both asset descriptors carry the signature
// the media host would have produced for them.
func (s *UploadService) Upload(ctx context.Context, in ports.UploadInput) (*domain.Song, error) {
	if in.Title == "" || in.Audio.PublicID == "" || in.Image.PublicID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !s.verify(in.Audio) || !s.verify(in.Image) {
		metrics.UploadsTotal.WithLabelValues("signature_mismatch").Inc()
		s.log.Warn().
			Str("username", in.Username).
			Str("song", in.Audio.PublicID).
			Msg("rejected upload with unverified asset signature")
		return nil, domain.ErrSignatureMismatch
	}

	now := s.now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	song := &domain.Song{
		Username:    in.Username,
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		Date:        date.UTC(),
		AudioID:     in.Audio.PublicID,
		ImageID:     in.Image.PublicID,
		Listens:     0,
		Likes:       []string{},
		Comments:    []domain.Comment{},
		CreatedAt:   now,
	}
	if err := s.songs.Create(ctx, song); err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	publishActivity(ctx, s.activity, s.log, ports.ActivityEvent{
		Kind:     ports.ActivityUploaded,
		Username: in.Username,
		AudioID:  song.AudioID,
		At:       now,
	})
	s.log.Info().Str("username", in.Username).Str("song", song.AudioID).Msg("song uploaded")
	return song, nil
}

func (s *UploadService) verify(asset ports.AssetDescriptor) bool {
	expected := s.signer.Sign(map[string]string{
		"public_id": asset.PublicID,
		"version":   asset.Version,
	})
	return subtle.ConstantTimeCompare([]byte(expected), []byte(asset.Signature)) == 1
}
