package ports

import (
	"context"
	"time"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// UploadSignature is handed to the client so it can upload directly to the
// media host.
type UploadSignature struct {
	Timestamp int64
	Signature string
	Username  string
	CloudName string
	APIKey    string
}

// AssetDescriptor identifies an asset returned by the media host after a
// direct upload, along with the signature the host attached to it.
type AssetDescriptor struct {
	PublicID  string
	Version   string
	Signature string
}

// UploadInput registers a song whose assets were uploaded client-side.
type UploadInput struct {
	Username    string
	Title       string
	Description string
	Genre       string
	Date        time.Time
	Audio       AssetDescriptor
	Image       AssetDescriptor
}

type UploadService interface {
	Signature(ctx context.Context, username string) (*UploadSignature, error)
	Upload(ctx context.Context, in UploadInput) (*domain.Song, error)
}
