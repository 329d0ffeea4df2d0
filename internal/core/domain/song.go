package domain

import (
	"errors"
	"time"
)

var (
	ErrSongNotFound      = errors.New("song not found")
	ErrSongExists        = errors.New("song already exists")
	ErrEmptyComment      = errors.New("comment cannot be empty")
	ErrCommentExists     = errors.New("comment id already used on this song")
	ErrSignatureMismatch = errors.New("upload signature mismatch")
)

// Comment is a single entry in a song's ordered comment list. ID is chosen
// by the client and is what DeleteComment matches on.
type Comment struct {
	ID       string    `json:"id" bson:"id"`
	Username string    `json:"username" bson:"username"`
	Text     string    `json:"comment" bson:"comment"`
	Date     time.Time `json:"date" bson:"date"`
}

// Song is an uploaded track. AudioID is the media host's public id of the
// audio asset and doubles as the identifier clients use for the song.
type Song struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Username    string    `json:"username" bson:"username"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Genre       string    `json:"genre" bson:"genre"`
	Date        time.Time `json:"date" bson:"date"`
	AudioID     string    `json:"song" bson:"song"`
	ImageID     string    `json:"picture" bson:"picture"`
	Listens     int64     `json:"listens" bson:"listens"`
	Likes       []string  `json:"likes" bson:"likes"`
	Comments    []Comment `json:"comments" bson:"comments"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// LikedBy reports whether username is in the song's like set.
func (s *Song) LikedBy(username string) bool {
	for _, u := range s.Likes {
		if u == username {
			return true
		}
	}
	return false
}

// LikeCount is the size of the like set.
func (s *Song) LikeCount() int {
	return len(s.Likes)
}
