package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GlobalFeed serves a page of all posts. The viewer is optional; when
// authenticated, posts they reported are hidden.
func (a *API) GlobalFeed(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	ctx, cancel := requestCtx()
	defer cancel()

	page, err := a.Feed.Global(ctx, c.GetString("userId"), c.Query("cursor"), pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (a *API) FollowingFeed(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	ctx, cancel := requestCtx()
	defer cancel()

	page, err := a.Feed.Following(ctx, c.GetString("userId"), c.Query("cursor"), pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
