package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zanith/zanith-api/internal/core/domain"
)

const collectionSongs = "songs"

// SongRepository implements ports.SongRepository. Songs are keyed by the
// media host public id of their audio asset (the "song" field).
type SongRepository struct {
	col *mongo.Collection
}

func NewSongRepository(db *mongo.Database) *SongRepository {
	return &SongRepository{col: db.Collection(collectionSongs)}
}

// Create inserts a new song document with empty like and comment arrays so
// later $addToSet/$push updates always target an array.
func (r *SongRepository) Create(ctx context.Context, s *domain.Song) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.Likes == nil {
		s.Likes = []string{}
	}
	if s.Comments == nil {
		s.Comments = []domain.Comment{}
	}

	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSongExists
		}
		return fmt.Errorf("insert song: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *SongRepository) FindByAudioID(ctx context.Context, audioID string) (*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Song
	if err := r.col.FindOne(ctx, bson.M{"song": audioID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSongNotFound
		}
		return nil, fmt.Errorf("find song: %w", err)
	}
	return &s, nil
}

func (r *SongRepository) FindByUsername(ctx context.Context, username string) ([]*domain.Song, error) {
	return r.find(ctx, bson.M{"username": username})
}

// Search matches term as a literal, case-sensitive substring of the title or
// the uploader's username.
func (r *SongRepository) Search(ctx context.Context, term string) ([]*domain.Song, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term)}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"username": pattern},
	}})
}

func (r *SongRepository) LikedBy(ctx context.Context, username string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"song": 1})
	cur, err := r.col.Find(ctx, bson.M{"likes": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("find liked songs: %w", err)
	}

	var rows []struct {
		AudioID string `bson:"song"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode liked songs: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.AudioID)
	}
	return ids, nil
}

func (r *SongRepository) Exists(ctx context.Context, audioID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"song": audioID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count songs: %w", err)
	}
	return n > 0, nil
}

func (r *SongRepository) IncrementListens(ctx context.Context, audioID string) (*domain.Song, error) {
	s, ok, err := r.findOneAndUpdate(ctx, bson.M{"song": audioID}, bson.M{"$inc": bson.M{"listens": 1}})
	if err != nil {
		return nil, fmt.Errorf("increment listens: %w", err)
	}
	if !ok {
		return nil, domain.ErrSongNotFound
	}
	return s, nil
}

// AddLike adds username to the like set, guarded on it being absent.
func (r *SongRepository) AddLike(ctx context.Context, audioID, username string) (*domain.Song, bool, error) {
	filter := bson.M{"song": audioID, "likes": bson.M{"$ne": username}}
	return r.findOneAndUpdate(ctx, filter, bson.M{"$addToSet": bson.M{"likes": username}})
}

// RemoveLike removes username from the like set, guarded on it being present.
func (r *SongRepository) RemoveLike(ctx context.Context, audioID, username string) (*domain.Song, bool, error) {
	filter := bson.M{"song": audioID, "likes": username}
	return r.findOneAndUpdate(ctx, filter, bson.M{"$pull": bson.M{"likes": username}})
}

// PushComment appends c unless the song already holds a comment with the
// same id, so PullComment never removes more than one entry.
func (r *SongRepository) PushComment(ctx context.Context, audioID string, c domain.Comment) error {
	uctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"song": audioID, "comments.id": bson.M{"$ne": c.ID}}
	res, err := r.col.UpdateOne(uctx, filter, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return fmt.Errorf("push comment: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	exists, err := r.Exists(ctx, audioID)
	if err != nil {
		return fmt.Errorf("push comment: %w", err)
	}
	if !exists {
		return domain.ErrSongNotFound
	}
	return domain.ErrCommentExists
}

func (r *SongRepository) PullComment(ctx context.Context, audioID, commentID string) error {
	return r.updateExisting(ctx, audioID, bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}})
}

// EnsureIndexes creates necessary indexes on the songs collection.
func (r *SongRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "song", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *SongRepository) find(ctx context.Context, filter bson.M) ([]*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find songs: %w", err)
	}

	songs := []*domain.Song{}
	if err := cur.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	return songs, nil
}

// findOneAndUpdate applies update to the document matching filter and
// returns its post-update state. ok is false when nothing matched.
func (r *SongRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Song, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s domain.Song
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &s, true, nil
}

func (r *SongRepository) updateExisting(ctx context.Context, audioID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"song": audioID}, update)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}
