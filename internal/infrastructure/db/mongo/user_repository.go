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

const collectionUsers = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

// mongoUser keeps the field names of the existing users collection.
type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Password       string             `bson:"password"`
	Email          string             `bson:"email"`
	Admin          bool               `bson:"admin"`
	Moderator      bool               `bson:"moderator"`
	RecordLabel    bool               `bson:"recordLabel"`
	SessionIDs     []string           `bson:"sessionId"`
	LastPlayedSong string             `bson:"lastPlayedSong,omitempty"`
	ProfilePic     string             `bson:"profilePic,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.Password,
		Roles: domain.Roles{
			Admin:       mu.Admin,
			Moderator:   mu.Moderator,
			RecordLabel: mu.RecordLabel,
		},
		SessionIDs:     mu.SessionIDs,
		LastPlayedSong: mu.LastPlayedSong,
		ProfilePic:     mu.ProfilePic,
		CreatedAt:      mu.CreatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sessions := user.SessionIDs
	if sessions == nil {
		sessions = []string{}
	}
	doc := mongoUser{
		Username:    user.Username,
		Password:    user.PasswordHash,
		Email:       user.Email,
		Admin:       user.Roles.Admin,
		Moderator:   user.Roles.Moderator,
		RecordLabel: user.Roles.RecordLabel,
		SessionIDs:  sessions,
		ProfilePic:  user.ProfilePic,
		CreatedAt:   user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindBySession matches token against the sessionId array; Mongo equality on
// an array field is a membership test.
func (r *UserRepository) FindBySession(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"sessionId": token})
}

func (r *UserRepository) FindFirstMatching(ctx context.Context, term string) (*domain.User, error) {
	filter := bson.M{"username": primitive.Regex{Pattern: regexp.QuoteMeta(term)}}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "username", Value: 1}}))
}

func (r *UserRepository) AddSession(ctx context.Context, username, token string) error {
	return r.updateOne(ctx, username, bson.M{"$push": bson.M{"sessionId": token}})
}

func (r *UserRepository) RemoveSession(ctx context.Context, username, token string) error {
	return r.updateOne(ctx, username, bson.M{"$pull": bson.M{"sessionId": token}})
}

func (r *UserRepository) SetLastPlayed(ctx context.Context, username, audioID string) error {
	return r.updateOne(ctx, username, bson.M{"$set": bson.M{"lastPlayedSong": audioID}})
}

// EnsureIndexes creates the indexes the users collection relies on. The
// unique username index backs the duplicate check at signup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sessionId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) updateOne(ctx context.Context, username string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx, bson.M{"username": username}, update); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
