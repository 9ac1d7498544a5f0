package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mataro/logger"
)

// Logical collection names.
const (
	CollUsers         = "users"
	CollPosts         = "posts"
	CollLikes         = "likes"
	CollShares        = "shares"
	CollNotifications = "notifications"
	CollMarketItems   = "market_items"
	CollReports       = "reports"
)

var Client *mongo.Client

// Name maps the deploy environment to a logical database partition.
// Production and staging run against different underlying databases.
func Name(env string) string {
	switch env {
	case "production":
		return "mataro"
	case "dev", "staging":
		return "mataro_dev1"
	default:
		return "mataro_test"
	}
}

func Connect(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	logger.Log.Info("connected to MongoDB")
	return nil
}

func Disconnect() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	logger.Log.Info("disconnected from MongoDB")
	return nil
}
