package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mataro/handlers"
	"mataro/middleware"
)

func SetupRouter(api *handlers.API, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(120, time.Minute)
	router.Use(middleware.RateLimit(limiter))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes (no auth required)
	public := router.Group("/api")
	public.POST("/signup", api.Signup)
	public.POST("/login", api.Login)

	// Global feed filters on the viewer when a valid token is present, but
	// never requires one.
	public.GET("/posts", middleware.OptionalJWTAuth(api.JWTSecret), api.GlobalFeed)
	// Post creation carries the author uid in the body, unverified.
	public.POST("/posts", api.CreatePost)
	public.GET("/posts/:postId", api.GetPost)
	public.GET("/posts/:postId/comments", api.GetComments)

	public.GET("/users/posts", api.UserPosts)
	public.GET("/users/handle/:username", api.GetUserByHandle)
	public.GET("/users/:id", api.GetUser)

	public.GET("/market", api.ListMarketItems)
	public.POST("/market", api.CreateMarketItem)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(api.JWTSecret))

	protected.DELETE("/posts/:postId", api.DeletePost)
	protected.POST("/posts/:postId/like", api.ToggleLike)
	protected.POST("/posts/:postId/rt", api.ToggleShare)
	protected.POST("/posts/:postId/report", api.ReportPost)

	protected.GET("/feed/following", api.FollowingFeed)

	protected.GET("/me", api.GetMyProfile)
	protected.PUT("/me", api.UpdateMyProfile)
	protected.POST("/me/avatar", api.UploadAvatar)

	protected.POST("/users/:id/follow", api.Follow)
	protected.DELETE("/users/:id/follow", api.Unfollow)
	protected.GET("/users/:id/follow", api.IsFollowing)

	protected.GET("/notifications", api.ListNotifications)
	protected.POST("/notifications/:id/read", api.MarkNotificationRead)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"code":  "NOT_FOUND",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
