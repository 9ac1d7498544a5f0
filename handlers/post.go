package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mataro/posts"
)

type createPostRequest struct {
	UID       string   `json:"uid" binding:"required"`
	Content   string   `json:"content"`
	IsPrivate bool     `json:"isPrivate"`
	Parent    string   `json:"parent"`
	ImageURL  string   `json:"imageURL"`
	Images    []string `json:"images"`
}

// CreatePost accepts either a JSON body or a multipart form; with multipart,
// attached image files upload in parallel before the post insert.
func (a *API) CreatePost(c *gin.Context) {
	in, ok := a.bindCreatePost(c)
	if !ok {
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	post, err := a.Posts.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (a *API) bindCreatePost(c *gin.Context) (posts.CreateInput, bool) {
	if c.ContentType() != "multipart/form-data" {
		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
			return posts.CreateInput{}, false
		}
		return posts.CreateInput{
			AuthorID:  req.UID,
			Content:   req.Content,
			IsPrivate: req.IsPrivate,
			Parent:    req.Parent,
			ImageURL:  req.ImageURL,
			Images:    req.Images,
		}, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data", "code": "VALIDATION"})
		return posts.CreateInput{}, false
	}

	in := posts.CreateInput{
		AuthorID:  c.PostForm("uid"),
		Content:   c.PostForm("content"),
		IsPrivate: c.PostForm("isPrivate") == "true",
		Parent:    c.PostForm("parent"),
	}

	files := form.File["images"]
	if len(files) > 0 {
		readers := make([]io.Reader, 0, len(files))
		closers := make([]io.Closer, 0, len(files))
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image", "code": "VALIDATION"})
				return posts.CreateInput{}, false
			}
			readers = append(readers, file)
			closers = append(closers, file)
		}
		defer func() {
			for _, closer := range closers {
				closer.Close()
			}
		}()

		ctx, cancel := requestCtx()
		defer cancel()

		urls, err := a.Uploads.UploadPostImages(ctx, in.AuthorID, readers)
		if err != nil {
			respondError(c, err)
			return posts.CreateInput{}, false
		}
		in.Images = urls
		in.ImageURL = urls[0]
	}

	return in, true
}

func (a *API) GetPost(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	post, err := a.Posts.GetByID(ctx, c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (a *API) GetComments(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	comments, err := a.Posts.CommentsOf(ctx, c.Param("postId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (a *API) DeletePost(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	if err := a.Posts.Delete(ctx, c.Param("postId"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (a *API) ReportPost(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	ctx, cancel := requestCtx()
	defer cancel()

	if err := a.Posts.Report(ctx, c.Param("postId"), c.GetString("userId"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post reported"})
}

// UserPosts serves the profile feed: offset pagination over the owner's post
// index.
func (a *API) UserPosts(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required", "code": "VALIDATION"})
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	ctx, cancel := requestCtx()
	defer cancel()

	page, err := a.Feed.Profile(ctx, userID, offset, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
