package engagement

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mataro/database"
	"mataro/errs"
	"mataro/models"
)

type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) recordColl(kind Kind) *mongo.Collection {
	if kind == KindShare {
		return s.db.Collection(database.CollShares)
	}
	return s.db.Collection(database.CollLikes)
}

func (s *MongoStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (s *MongoStore) FindRecord(ctx context.Context, kind Kind, postID, userID string) (*models.EngagementRecord, error) {
	var rec models.EngagementRecord
	err := s.recordColl(kind).FindOne(ctx, bson.M{"postId": postID, "userId": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoStore) InsertRecord(ctx context.Context, kind Kind, rec *models.EngagementRecord) error {
	_, err := s.recordColl(kind).InsertOne(ctx, rec)
	return err
}

func (s *MongoStore) DeleteRecord(ctx context.Context, kind Kind, id string) error {
	_, err := s.recordColl(kind).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) ApplyEngagement(ctx context.Context, kind Kind, postID, userID string, delta int) error {
	counter, set := "likes", "likedBy"
	if kind == KindShare {
		counter, set = "shares", "sharedBy"
	}

	update := bson.M{"$inc": bson.M{counter: delta}}
	if delta > 0 {
		update["$addToSet"] = bson.M{set: userID}
	} else {
		update["$pull"] = bson.M{set: userID}
	}

	result, err := s.db.Collection(database.CollPosts).UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *MongoStore) GetPostAuthor(ctx context.Context, postID string) (string, error) {
	var post struct {
		UID string `bson:"uid"`
	}
	err := s.db.Collection(database.CollPosts).FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return post.UID, nil
}

func (s *MongoStore) GetUsername(ctx context.Context, userID string) (string, error) {
	var user struct {
		Username string `bson:"username"`
	}
	err := s.db.Collection(database.CollUsers).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
