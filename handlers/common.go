package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mataro/engagement"
	"mataro/errs"
	"mataro/feed"
	"mataro/logger"
	"mataro/market"
	"mataro/notify"
	"mataro/posts"
	"mataro/social"
	"mataro/uploads"
	"mataro/users"
)

const requestTimeout = 10 * time.Second

type API struct {
	Posts         *posts.Service
	Engagement    *engagement.Engine
	Feed          *feed.Paginator
	Social        *social.Graph
	Users         *users.Service
	Market        *market.Service
	Notifications notify.Store
	Uploads       *uploads.Uploader
	JWTSecret     string
}

func requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// respondError maps service errors to responses carrying a machine-checkable
// code next to the human-readable message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	default:
		logger.Log.WithError(err).Error("request failed")
	}

	c.JSON(status, gin.H{"error": message, "code": errs.Code(err)})
}
