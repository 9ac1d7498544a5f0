// Package users owns profiles and the identity boundary: account creation,
// credential checks, profile reads (cached) and profile updates.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"mataro/cache"
	"mataro/errs"
	"mataro/models"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Store interface {
	InsertUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, set map[string]interface{}) error
}

type Service struct {
	store    Store
	profiles *cache.ProfileCache
}

func NewService(store Store, profiles *cache.ProfileCache) *Service {
	return &Service{store: store, profiles: profiles}
}

// Register creates an account with a randomly generated public handle; the
// user can rename it later through UpdateProfile.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 6 {
		return nil, fmt.Errorf("%w: email and a password of at least 6 characters are required", errs.ErrValidation)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hash := string(hashed)

	now := time.Now().UnixMilli()
	user := &models.User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: &hash,
		Username:     generateUsername(),
		Followers:    []string{},
		Following:    []string{},
		UserPosts:    []string{},
		CreatedAt:    now,
		LastSeen:     now,
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Fresh login invalidates any cached profile from a previous session.
	s.profiles.Invalidate(ctx, user.ID)

	return user, nil
}

// GetByID reads through the profile cache.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := s.profiles.Get(ctx, id); ok {
		return user, nil
	}

	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	s.profiles.Set(ctx, user)
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.GetUserByUsername(ctx, username)
}

type ProfileUpdate struct {
	Username    *string
	Description *string
	AvatarURL   *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	set := map[string]interface{}{}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return fmt.Errorf("%w: username must not be empty", errs.ErrValidation)
		}
		if existing, err := s.store.GetUserByUsername(ctx, username); err == nil && existing.ID != id {
			return fmt.Errorf("%w: username already taken", errs.ErrValidation)
		}
		set["username"] = username
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.AvatarURL != nil {
		set["avatarURL"] = *update.AvatarURL
	}

	if len(set) == 0 {
		return nil
	}

	if err := s.store.UpdateProfile(ctx, id, set); err != nil {
		return err
	}
	s.profiles.Invalidate(ctx, id)
	return nil
}

func generateUsername() string {
	return "user-" + strings.Split(uuid.NewString(), "-")[0]
}
