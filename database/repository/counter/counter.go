package counterRepo

import (
	"context"
	"fmt"
	"time"

	"opdcare/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SequenceRepository hands out monotonically increasing integers per named
// sequence via an atomic upsert-and-increment, safe across process
// instances. Used for receipt numbers; queue tokens are derived from the
// registration window instead (see services/scheduling).
type SequenceRepository interface {
	Next(name string) (int64, error)
}

// MongoSequenceRepo implements SequenceRepository over a counters collection.
type MongoSequenceRepo struct {
	coll *mongo.Collection
}

// NewMongoSequenceRepo constructs a new instance of MongoSequenceRepo.
func NewMongoSequenceRepo() SequenceRepository {
	return &MongoSequenceRepo{
		coll: database.DB().Collection("sequence_counters"),
	}
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func (repo *MongoSequenceRepo) Next(name string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc counterDoc
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("error advancing sequence %s: %w", name, err)
	}
	return doc.Seq, nil
}
