package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (a *API) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	ctx, cancel := requestCtx()
	defer cancel()

	notifications, err := a.Notifications.ListForUser(ctx, c.GetString("userId"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (a *API) MarkNotificationRead(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	if err := a.Notifications.MarkRead(ctx, c.Param("id"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}
