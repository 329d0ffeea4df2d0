package handler

import (
	"encoding/json"
	"time"

	"github.com/zanith/zanith-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
	Email    string `json:"email"    validate:"required,email"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User *domain.User `json:"user"`
}

type rootResponse struct {
	Username string `json:"username"`
}

// --- Songs ---

type songRefRequest struct {
	Song string `json:"song" validate:"required"`
}

type commentRequest struct {
	Song    string `json:"song"    validate:"required"`
	ID      string `json:"id"      validate:"required"`
	Comment string `json:"comment"`
}

type deleteCommentRequest struct {
	Song string `json:"song" validate:"required"`
	ID   string `json:"id"   validate:"required"`
}

type feedResponse struct {
	Songs []*domain.Song `json:"songs"`
	Like  []string       `json:"like"`
}

type profileResponse struct {
	Songs       []*domain.Song `json:"songs"`
	Like        []string       `json:"like"`
	RecordLabel string         `json:"record_label,omitempty"`
}

type searchResponse struct {
	Songs  []*domain.Song `json:"songs"`
	Artist string         `json:"artist"`
	Like   []string       `json:"like"`
}

type listenResponse struct {
	Listen int64 `json:"listen"`
}

type likeResponse struct {
	Like    int  `json:"like"`
	NewLike bool `json:"newLike"`
}

type commentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// --- Uploads ---

// uploadRequest carries the descriptors the media host returned to the
// client after a direct upload. Versions arrive as JSON numbers or strings.
type uploadRequest struct {
	Title         string      `json:"title"           validate:"required,max=200"`
	Description   string      `json:"description"     validate:"max=5000"`
	Genre         string      `json:"genre"           validate:"max=64"`
	Date          *time.Time  `json:"date"`
	SongPublicID  string      `json:"song_public_id"  validate:"required"`
	SongVersion   json.Number `json:"song_version"    validate:"required"`
	SongSignature string      `json:"song_signature"  validate:"required"`
	ImagePublicID string      `json:"image_public_id" validate:"required"`
	ImageVersion  json.Number `json:"image_version"   validate:"required"`
	ImageSig      string      `json:"image_signature" validate:"required"`
}

type signatureResponse struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Username  string `json:"username"`
	CloudName string `json:"cloud_name,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
}
