package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zanith/zanith-api/internal/core/domain"
)

const collectionRecordLabels = "record-labels"

type RecordLabelRepository struct {
	coll *mongo.Collection
}

func NewRecordLabelRepository(db *mongo.Database) *RecordLabelRepository {
	return &RecordLabelRepository{coll: db.Collection(collectionRecordLabels)}
}

type mongoRecordLabel struct {
	Username    string `bson:"username"`
	RecordLabel string `bson:"recordlabel"`
}

func (r *RecordLabelRepository) FindByUsername(ctx context.Context, username string) (*domain.RecordLabel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRecordLabel
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordLabelNotFound
		}
		return nil, fmt.Errorf("find record label: %w", err)
	}
	return &domain.RecordLabel{Username: doc.Username, Name: doc.RecordLabel}, nil
}
