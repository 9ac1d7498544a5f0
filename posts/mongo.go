package posts

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mataro/database"
	"mataro/errs"
	"mataro/logger"
	"mataro/models"
)

type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) posts() *mongo.Collection { return s.db.Collection(database.CollPosts) }
func (s *MongoStore) users() *mongo.Collection { return s.db.Collection(database.CollUsers) }

func (s *MongoStore) InsertPost(ctx context.Context, post *models.Post) error {
	_, err := s.posts().InsertOne(ctx, post)
	return err
}

func (s *MongoStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.posts().FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoStore) DeletePost(ctx context.Context, id string) error {
	_, err := s.posts().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) ListComments(ctx context.Context, parentID string) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.posts().Find(ctx, bson.M{"parent": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Post{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AppendUserPost is deliberately two-step: the author document may not exist
// yet (first post before profile bootstrap), in which case the index append
// is skipped rather than failed.
func (s *MongoStore) AppendUserPost(ctx context.Context, userID, postID string) error {
	count, err := s.users().CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if count == 0 {
		logger.Log.WithField("user", userID).Debug("user document absent, skipping post index append")
		return nil
	}

	_, err = s.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$addToSet": bson.M{"userPosts": postID}})
	return err
}

func (s *MongoStore) RemoveUserPost(ctx context.Context, userID, postID string) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$pull": bson.M{"userPosts": postID}})
	return err
}

func (s *MongoStore) LinkComment(ctx context.Context, parentID, commentID string) error {
	result, err := s.posts().UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$addToSet": bson.M{"comments": commentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *MongoStore) UnlinkComment(ctx context.Context, parentID, commentID string) error {
	result, err := s.posts().UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$pull": bson.M{"comments": commentID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteEngagementRecords(ctx context.Context, postID string) error {
	for _, coll := range []string{database.CollLikes, database.CollShares} {
		if _, err := s.db.Collection(coll).DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) AddReportedBy(ctx context.Context, postID, userID string) error {
	result, err := s.posts().UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$addToSet": bson.M{"reportedBy": userID}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *MongoStore) InsertReport(ctx context.Context, report *models.Report) error {
	_, err := s.db.Collection(database.CollReports).InsertOne(ctx, report)
	return err
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
