// Package posts owns creation, retrieval and deletion of posts, including
// comments (posts with a parent reference) and the denormalized per-user
// post index used for profile pagination.
package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mataro/errs"
	"mataro/logger"
	"mataro/models"
)

type Store interface {
	InsertPost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListComments(ctx context.Context, parentID string) ([]models.Post, error)

	// AppendUserPost adds postID to the author's userPosts index. The index
	// document may not exist yet; that case is tolerated, not an error.
	AppendUserPost(ctx context.Context, userID, postID string) error
	RemoveUserPost(ctx context.Context, userID, postID string) error

	LinkComment(ctx context.Context, parentID, commentID string) error
	UnlinkComment(ctx context.Context, parentID, commentID string) error

	DeleteEngagementRecords(ctx context.Context, postID string) error

	AddReportedBy(ctx context.Context, postID, userID string) error
	InsertReport(ctx context.Context, report *models.Report) error

	GetUser(ctx context.Context, id string) (*models.User, error)
}

type Notifier interface {
	Emit(typ, fromUserID, toUserID, postID, message string)
}

type Service struct {
	store  Store
	notify Notifier
}

func NewService(store Store, notify Notifier) *Service {
	return &Service{store: store, notify: notify}
}

type CreateInput struct {
	AuthorID  string
	Content   string
	IsPrivate bool
	Parent    string // empty for a top-level post
	ImageURL  string
	Images    []string
}

const maxContentLength = 280

// Create inserts the post, appends it to the author's index and, for a
// comment, links it into the parent. A missing parent degrades gracefully:
// the comment is still created, only the link and notification are skipped.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Post, error) {
	if in.AuthorID == "" {
		return nil, fmt.Errorf("%w: uid is required", errs.ErrValidation)
	}
	if in.Content == "" && in.ImageURL == "" && len(in.Images) == 0 {
		return nil, fmt.Errorf("%w: content or an image is required", errs.ErrValidation)
	}
	if len([]rune(in.Content)) > maxContentLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", errs.ErrValidation, maxContentLength)
	}

	author := "Anónimo"
	if user, err := s.store.GetUser(ctx, in.AuthorID); err == nil {
		author = user.Username
	}

	post := &models.Post{
		ID:         primitive.NewObjectID().Hex(),
		UID:        in.AuthorID,
		Author:     author,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		Images:     append([]string{}, in.Images...),
		IsPrivate:  in.IsPrivate,
		Parent:     in.Parent,
		LikedBy:    []string{},
		SharedBy:   []string{},
		Comments:   []string{},
		ReportedBy: []string{},
		CreatedAt:  time.Now().UnixMilli(),
	}

	if err := s.store.InsertPost(ctx, post); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	if err := s.store.AppendUserPost(ctx, in.AuthorID, post.ID); err != nil {
		return nil, fmt.Errorf("append user post index: %w", err)
	}

	if post.IsComment() {
		s.linkToParent(ctx, post)
	}

	return post, nil
}

func (s *Service) linkToParent(ctx context.Context, comment *models.Post) {
	parent, err := s.store.GetPost(ctx, comment.Parent)
	if err != nil {
		logger.Log.WithError(err).WithField("parent", comment.Parent).Warn("comment parent lookup failed, leaving comment unlinked")
		return
	}

	if err := s.store.LinkComment(ctx, parent.ID, comment.ID); err != nil {
		logger.Log.WithError(err).WithField("parent", parent.ID).Warn("comment link failed")
		return
	}

	if parent.UID != comment.UID {
		s.notify.Emit(models.NotificationComment, comment.UID, parent.UID, parent.ID,
			fmt.Sprintf("%s comentó tu post", comment.Author))
	}
}

// Delete removes the post and cascades in a fixed order: parent comments
// array, engagement records, author index, then the post document itself.
// Comments of the deleted post are left in place as orphans.
func (s *Service) Delete(ctx context.Context, postID, requesterID string) error {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.UID != requesterID {
		return fmt.Errorf("%w: only the author can delete a post", errs.ErrForbidden)
	}

	if post.IsComment() {
		if err := s.store.UnlinkComment(ctx, post.Parent, post.ID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("unlink comment: %w", err)
		}
	}

	if err := s.store.DeleteEngagementRecords(ctx, postID); err != nil {
		return fmt.Errorf("delete engagement records: %w", err)
	}

	if err := s.store.RemoveUserPost(ctx, post.UID, postID); err != nil {
		return fmt.Errorf("remove from user index: %w", err)
	}

	if err := s.store.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	return nil
}

func (s *Service) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return s.store.GetPost(ctx, postID)
}

// CommentsOf returns the comments of a post, newest first.
func (s *Service) CommentsOf(ctx context.Context, postID string) ([]models.Post, error) {
	return s.store.ListComments(ctx, postID)
}

// Report marks the post as reported by userID so that feeds hide it from
// them, and records a report document.
func (s *Service) Report(ctx context.Context, postID, userID, reason string) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", errs.ErrValidation)
	}

	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return err
	}

	if err := s.store.AddReportedBy(ctx, postID, userID); err != nil {
		return fmt.Errorf("mark reported: %w", err)
	}

	report := &models.Report{
		ID:        primitive.NewObjectID().Hex(),
		PostID:    postID,
		UserID:    userID,
		Reason:    reason,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.store.InsertReport(ctx, report); err != nil {
		// The reportedBy mark is what feeds filter on; the flat record is
		// secondary and its failure is not surfaced.
		logger.Log.WithError(err).Warn("report record insert failed")
	}

	return nil
}
