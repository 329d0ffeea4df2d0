package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/zanith/zanith-api/internal/core/domain"
)

const songsNS = "zanith.songs"

func songDoc(audioID string, listens int64, likes ...string) bson.D {
	if likes == nil {
		likes = []string{}
	}
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "username", Value: "bob"},
		{Key: "title", Value: "Tune"},
		{Key: "date", Value: primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))},
		{Key: "song", Value: audioID},
		{Key: "picture", Value: "img/" + audioID},
		{Key: "listens", Value: listens},
		{Key: "likes", Value: likes},
		{Key: "comments", Value: bson.A{}},
	}
}

func TestSongRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		s := &domain.Song{AudioID: "a1", Username: "bob"}
		if err := repo.Create(context.Background(), s); err != nil {
			mt.Fatalf("create: %v", err)
		}
		if s.ID == "" || s.Likes == nil || s.Comments == nil {
			mt.Fatalf("create must assign an id and empty sets: %+v", s)
		}
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := repo.Create(context.Background(), &domain.Song{AudioID: "a1"})
		if !errors.Is(err, domain.ErrSongExists) {
			mt.Fatalf("expected ErrSongExists, got %v", err)
		}
	})

	mt.Run("find by audio id", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch, songDoc("a1", 3, "alice")))

		s, err := repo.FindByAudioID(context.Background(), "a1")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if s.AudioID != "a1" || s.ImageID != "img/a1" || s.Listens != 3 || !s.LikedBy("alice") || s.ID == "" {
			mt.Fatalf("unexpected song: %+v", s)
		}
	})

	mt.Run("find by audio id missing", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch))

		if _, err := repo.FindByAudioID(context.Background(), "missing"); !errors.Is(err, domain.ErrSongNotFound) {
			mt.Fatalf("expected ErrSongNotFound, got %v", err)
		}
	})

	mt.Run("find by username", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch, songDoc("a1", 0), songDoc("a2", 0)))

		songs, err := repo.FindByUsername(context.Background(), "bob")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if len(songs) != 2 || songs[1].AudioID != "a2" {
			mt.Fatalf("unexpected songs: %+v", songs)
		}
	})

	mt.Run("liked by", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch,
			bson.D{{Key: "song", Value: "a1"}},
			bson.D{{Key: "song", Value: "a7"}},
		))

		ids, err := repo.LikedBy(context.Background(), "alice")
		if err != nil {
			mt.Fatalf("liked by: %v", err)
		}
		if len(ids) != 2 || ids[0] != "a1" || ids[1] != "a7" {
			mt.Fatalf("unexpected ids: %v", ids)
		}
	})

	mt.Run("increment listens returns post image", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: songDoc("a1", 8)},
		})

		s, err := repo.IncrementListens(context.Background(), "a1")
		if err != nil {
			mt.Fatalf("increment: %v", err)
		}
		if s.Listens != 8 {
			mt.Fatalf("expected 8 listens, got %d", s.Listens)
		}
	})

	mt.Run("add like applied", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: songDoc("a1", 0, "carol", "alice")},
		})

		s, applied, err := repo.AddLike(context.Background(), "a1", "alice")
		if err != nil || !applied {
			mt.Fatalf("expected applied like, got %v %v", applied, err)
		}
		if s.LikeCount() != 2 {
			mt.Fatalf("expected 2 likes, got %d", s.LikeCount())
		}
	})

	mt.Run("push comment", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		if err := repo.PushComment(context.Background(), "a1", domain.Comment{ID: "c1", Text: "hi"}); err != nil {
			mt.Fatalf("push: %v", err)
		}
	})

	mt.Run("push comment with a used id", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
			mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		err := repo.PushComment(context.Background(), "a1", domain.Comment{ID: "c1", Text: "again"})
		if !errors.Is(err, domain.ErrCommentExists) {
			mt.Fatalf("expected ErrCommentExists, got %v", err)
		}
	})

	mt.Run("push comment on missing song", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
			mtest.CreateCursorResponse(0, songsNS, mtest.FirstBatch),
		)

		err := repo.PushComment(context.Background(), "missing", domain.Comment{ID: "c1", Text: "hi"})
		if !errors.Is(err, domain.ErrSongNotFound) {
			mt.Fatalf("expected ErrSongNotFound, got %v", err)
		}
	})

	mt.Run("pull absent comment is a no-op", func(mt *mtest.T) {
		repo := NewSongRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 0}})

		if err := repo.PullComment(context.Background(), "a1", "absent"); err != nil {
			mt.Fatalf("expected no error, got %v", err)
		}
	})
}
