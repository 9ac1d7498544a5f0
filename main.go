package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"mataro/cache"
	"mataro/config"
	"mataro/database"
	"mataro/engagement"
	"mataro/feed"
	"mataro/handlers"
	"mataro/logger"
	"mataro/market"
	"mataro/notify"
	"mataro/posts"
	"mataro/routes"
	"mataro/social"
	"mataro/uploads"
	"mataro/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("config load failed")
	}

	logger.Init(cfg.Env)
	logger.Log.Info("starting Mataró backend")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	// ===== MONGODB WITH RETRY =====
	var dbErr error
	for i := 1; i <= 3; i++ {
		if dbErr = database.Connect(cfg.MongoURI); dbErr != nil {
			logger.Log.WithError(dbErr).Warnf("MongoDB connection attempt %d failed", i)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		logger.Log.WithError(dbErr).Fatal("failed to connect to MongoDB")
	}
	defer database.Disconnect()

	db := database.Client.Database(database.Name(cfg.Env))

	// ===== REDIS (profile cache, optional) =====
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Log.WithError(err).Warn("Redis unreachable, profile cache disabled")
			redisClient = nil
		}
	}

	var profileCache *cache.ProfileCache
	if redisClient != nil {
		profileCache = cache.NewProfileCache(redisClient, cache.DefaultTTL)
	} else {
		profileCache = cache.NewProfileCache(nil, cache.DefaultTTL)
	}

	uploader, err := uploads.New(cfg.CloudinaryURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("cloudinary setup failed")
	}

	// ===== SERVICES =====
	emitter := notify.NewEmitter(notify.NewMongoStore(db), 256)
	emitter.Start()
	defer emitter.Close()

	postService := posts.NewService(posts.NewMongoStore(db), emitter)

	api := &handlers.API{
		Posts:         postService,
		Engagement:    engagement.NewEngine(engagement.NewMongoStore(db), emitter),
		Feed:          feed.NewPaginator(feed.NewMongoStore(db)),
		Social:        social.NewGraph(social.NewMongoStore(db), emitter),
		Users:         users.NewService(users.NewMongoStore(db), profileCache),
		Market:        market.NewService(market.NewMongoStore(db), postService),
		Notifications: notify.NewMongoStore(db),
		Uploads:       uploader,
		JWTSecret:     cfg.JWTSecret,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(api, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infof("server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("server error")
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("forced shutdown")
	}

	logger.Log.Info("server stopped")
}
