package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mataro/errs"
	"mataro/models"
	"mataro/posts"
)

type fakeStore struct {
	items     []models.MarketItem
	insertErr error
}

func (f *fakeStore) InsertItem(ctx context.Context, item *models.MarketItem) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeStore) ListItems(ctx context.Context) ([]models.MarketItem, error) {
	return f.items, nil
}

type fakePostCreator struct {
	created   []posts.CreateInput
	createErr error
}

func (f *fakePostCreator) Create(ctx context.Context, in posts.CreateInput) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &models.Post{ID: "p1", UID: in.AuthorID, Content: in.Content}, nil
}

func TestCreateListing(t *testing.T) {
	store := &fakeStore{}
	service := NewService(store, &fakePostCreator{})

	item, err := service.Create(context.Background(), CreateInput{
		Title:       "Bicicleta",
		Description: "poco uso",
		Price:       120,
		Images:      []string{"https://img/1.jpg"},
		SellerID:    "u1",
		SellerName:  "Ana",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.MarketStatusAvailable, item.Status)
	assert.NotZero(t, item.CreatedAt)
	require.Len(t, store.items, 1)
	assert.Equal(t, "Bicicleta", store.items[0].Title)
}

func TestCreateListingValidation(t *testing.T) {
	service := NewService(&fakeStore{}, &fakePostCreator{})

	cases := []CreateInput{
		{Title: "", SellerID: "u1", Price: 10},
		{Title: "Bici", SellerID: "", Price: 10},
		{Title: "Bici", SellerID: "u1", Price: 0},
		{Title: "Bici", SellerID: "u1", Price: -5},
	}
	for _, in := range cases {
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
}

func TestCreateListingWithCompanionPost(t *testing.T) {
	store := &fakeStore{}
	creator := &fakePostCreator{}
	service := NewService(store, creator)

	_, err := service.Create(context.Background(), CreateInput{
		Title:       "Bicicleta",
		Description: "poco uso",
		Price:       120,
		Images:      []string{"https://img/1.jpg", "https://img/2.jpg"},
		SellerID:    "u1",
		CreatePost:  true,
	})
	require.NoError(t, err)

	require.Len(t, creator.created, 1)
	post := creator.created[0]
	assert.Equal(t, "u1", post.AuthorID)
	assert.Equal(t, "📢 ¡Vendo Bicicleta por 120€!\n\npoco uso", post.Content)
	assert.Equal(t, "https://img/1.jpg", post.ImageURL)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, post.Images)
}

func TestCreateListingWithoutPostFlag(t *testing.T) {
	creator := &fakePostCreator{}
	service := NewService(&fakeStore{}, creator)

	_, err := service.Create(context.Background(), CreateInput{
		Title: "Bici", SellerID: "u1", Price: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, creator.created)
}

func TestCompanionPostFailureKeepsListing(t *testing.T) {
	store := &fakeStore{}
	creator := &fakePostCreator{createErr: errors.New("boom")}
	service := NewService(store, creator)

	item, err := service.Create(context.Background(), CreateInput{
		Title: "Bici", SellerID: "u1", Price: 10, CreatePost: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, item)
	assert.Len(t, store.items, 1)
}

func TestCreateListingInsertError(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("down")}
	creator := &fakePostCreator{}
	service := NewService(store, creator)

	_, err := service.Create(context.Background(), CreateInput{
		Title: "Bici", SellerID: "u1", Price: 10, CreatePost: true,
	})
	require.Error(t, err)
	assert.Empty(t, creator.created, "no companion post when the listing failed")
}

func TestList(t *testing.T) {
	store := &fakeStore{items: []models.MarketItem{{ID: "m1"}, {ID: "m2"}}}
	service := NewService(store, &fakePostCreator{})

	items, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
