// Package market owns marketplace listings. A listing can optionally create
// a companion promotional post; the two are independent afterwards, deleting
// one never touches the other.
package market

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mataro/errs"
	"mataro/logger"
	"mataro/models"
	"mataro/posts"
)

type Store interface {
	InsertItem(ctx context.Context, item *models.MarketItem) error
	ListItems(ctx context.Context) ([]models.MarketItem, error)
}

// PostCreator is satisfied by the posts service.
type PostCreator interface {
	Create(ctx context.Context, in posts.CreateInput) (*models.Post, error)
}

type Service struct {
	store Store
	posts PostCreator
}

func NewService(store Store, posts PostCreator) *Service {
	return &Service{store: store, posts: posts}
}

type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Images      []string
	SellerID    string
	SellerName  string
	CreatePost  bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.MarketItem, error) {
	if in.Title == "" || in.SellerID == "" || in.Price <= 0 {
		return nil, fmt.Errorf("%w: title, price and sellerId are required", errs.ErrValidation)
	}

	item := &models.MarketItem{
		ID:          primitive.NewObjectID().Hex(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Images:      append([]string{}, in.Images...),
		SellerID:    in.SellerID,
		SellerName:  in.SellerName,
		CreatedAt:   time.Now().UnixMilli(),
		Status:      models.MarketStatusAvailable,
	}

	if err := s.store.InsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("insert market item: %w", err)
	}

	if in.CreatePost {
		s.createCompanionPost(ctx, in)
	}

	return item, nil
}

// createCompanionPost announces the listing on the feed. Best-effort: the
// listing has already been created and is not rolled back on failure.
func (s *Service) createCompanionPost(ctx context.Context, in CreateInput) {
	content := fmt.Sprintf("📢 ¡Vendo %s por %.0f€!\n\n%s", in.Title, in.Price, in.Description)

	imageURL := ""
	if len(in.Images) > 0 {
		imageURL = in.Images[0]
	}

	_, err := s.posts.Create(ctx, posts.CreateInput{
		AuthorID: in.SellerID,
		Content:  content,
		ImageURL: imageURL,
		Images:   in.Images,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("seller", in.SellerID).Warn("companion post creation failed")
	}
}

// List returns all listings, newest first.
func (s *Service) List(ctx context.Context) ([]models.MarketItem, error) {
	return s.store.ListItems(ctx)
}
