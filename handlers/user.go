package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mataro/users"
)

func (a *API) GetUser(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	user, err := a.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserByHandle resolves the public routable username to a profile.
func (a *API) GetUserByHandle(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	user, err := a.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a *API) GetMyProfile(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	user, err := a.Users.GetByID(ctx, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Username    *string `json:"username"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatarURL"`
}

func (a *API) UpdateMyProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	update := users.ProfileUpdate{
		Username:    req.Username,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	}
	if err := a.Users.UpdateProfile(ctx, c.GetString("userId"), update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (a *API) UploadAvatar(c *gin.Context) {
	userID := c.GetString("userId")

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No avatar file provided", "code": "VALIDATION"})
		return
	}
	defer file.Close()

	ctx, cancel := requestCtx()
	defer cancel()

	url, err := a.Uploads.UploadAvatar(ctx, userID, file)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := a.Users.UpdateProfile(ctx, userID, users.ProfileUpdate{AvatarURL: &url}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarURL": url})
}

func (a *API) Follow(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	if err := a.Social.Follow(ctx, c.GetString("userId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Following"})
}

func (a *API) Unfollow(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	if err := a.Social.Unfollow(ctx, c.GetString("userId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

func (a *API) IsFollowing(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	following, err := a.Social.IsFollowing(ctx, c.GetString("userId"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}
