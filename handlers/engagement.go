package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mataro/engagement"
)

func (a *API) ToggleLike(c *gin.Context) {
	a.toggle(c, engagement.KindLike)
}

func (a *API) ToggleShare(c *gin.Context) {
	a.toggle(c, engagement.KindShare)
}

func (a *API) toggle(c *gin.Context, kind engagement.Kind) {
	ctx, cancel := requestCtx()
	defer cancel()

	added, err := a.Engagement.Toggle(ctx, kind, c.Param("postId"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	state := "removed"
	if added {
		state = "added"
	}
	c.JSON(http.StatusOK, gin.H{"kind": string(kind), "state": state})
}
