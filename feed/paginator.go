// Package feed composes ordered, cursor-based queries over post storage to
// produce the global feed, the following feed and the profile feed.
package feed

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"mataro/errs"
	"mataro/models"
)

// MaxFollowingAuthors is the cardinality ceiling of the store's "author is
// one of" operator. A viewer following more users than this only sees posts
// from the first MaxFollowingAuthors of them. Known capacity limit.
const MaxFollowingAuthors = 30

const DefaultPageSize = 20

type Cursor struct {
	CreatedAt int64
	ID        string
}

func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d:%s", c.CreatedAt, c.ID)))
}

func DecodeCursor(raw string) (*Cursor, error) {
	if raw == "" {
		return nil, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", errs.ErrValidation)
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: malformed cursor", errs.ErrValidation)
	}
	createdAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed cursor", errs.ErrValidation)
	}
	return &Cursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

// Query selects posts ordered by createdAt descending (id descending as the
// tie-break), optionally restricted to a set of authors, starting after a
// cursor position.
type Query struct {
	Authors []string
	After   *Cursor
	Limit   int
}

type Store interface {
	ListPosts(ctx context.Context, q Query) ([]models.Post, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
}

type Paginator struct {
	store Store
}

func NewPaginator(store Store) *Paginator {
	return &Paginator{store: store}
}

// Page is one feed page. PageActualSize is the raw fetched count before the
// viewer filter; raw count < requested page size means there is no more data
// upstream and NextCursor is empty. Both exhaustion signals always agree.
type Page struct {
	Posts          []models.Post `json:"posts"`
	NextCursor     string        `json:"nextCursor,omitempty"`
	PageActualSize int           `json:"pageActualSize"`
}

// Global returns a page of all posts, newest first, hiding posts the viewer
// has reported.
func (p *Paginator) Global(ctx context.Context, viewerID, cursor string, pageSize int) (*Page, error) {
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	pageSize = normalizePageSize(pageSize)

	raw, err := p.store.ListPosts(ctx, Query{After: after, Limit: pageSize})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return buildPage(raw, viewerID, pageSize), nil
}

// Following returns a page of posts from the users the viewer follows. An
// empty following set short-circuits to an empty page without a query.
func (p *Paginator) Following(ctx context.Context, viewerID, cursor string, pageSize int) (*Page, error) {
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	pageSize = normalizePageSize(pageSize)

	viewer, err := p.store.GetUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(viewer.Following) == 0 {
		return &Page{Posts: []models.Post{}}, nil
	}

	authors := viewer.Following
	if len(authors) > MaxFollowingAuthors {
		authors = authors[:MaxFollowingAuthors]
	}

	raw, err := p.store.ListPosts(ctx, Query{Authors: authors, After: after, Limit: pageSize})
	if err != nil {
		return nil, fmt.Errorf("list following posts: %w", err)
	}

	return buildPage(raw, viewerID, pageSize), nil
}

// ProfilePage paginates by integer offset into the owner's userPosts index
// rather than by timestamp cursor; the index is already in insertion order.
type ProfilePage struct {
	Posts      []models.Post `json:"posts"`
	NextOffset *int          `json:"nextOffset,omitempty"`
}

func (p *Paginator) Profile(ctx context.Context, userID string, offset, pageSize int) (*ProfilePage, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", errs.ErrValidation)
	}
	pageSize = normalizePageSize(pageSize)

	user, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := user.UserPosts
	if offset >= len(index) {
		return &ProfilePage{Posts: []models.Post{}}, nil
	}

	end := offset + pageSize
	if end > len(index) {
		end = len(index)
	}

	page := &ProfilePage{Posts: []models.Post{}}
	for _, postID := range index[offset:end] {
		post, err := p.store.GetPost(ctx, postID)
		if err != nil {
			// Index entries can briefly outlive a deleted post; skip them.
			continue
		}
		page.Posts = append(page.Posts, *post)
	}

	if end < len(index) {
		next := end
		page.NextOffset = &next
	}
	return page, nil
}

func buildPage(raw []models.Post, viewerID string, pageSize int) *Page {
	page := &Page{Posts: []models.Post{}, PageActualSize: len(raw)}

	for _, post := range raw {
		if post.ReportedByUser(viewerID) {
			continue
		}
		page.Posts = append(page.Posts, post)
	}

	// The cursor advances over the raw page, including filtered-out posts,
	// so subsequent requests never refetch them.
	if len(raw) == pageSize {
		last := raw[len(raw)-1]
		page.NextCursor = Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 || pageSize > 100 {
		return DefaultPageSize
	}
	return pageSize
}
