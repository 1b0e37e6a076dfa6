package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"microblog/internal/config"
	"microblog/internal/domain/sqlite"
	handler2 "microblog/internal/http/handler"
	"microblog/internal/http/middleware"
	"microblog/internal/infrastructure/storage"
	"microblog/internal/service"
)

func main() {
	// Loads from .env when present; real env vars win either way
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	cfg := config.Load()
	validate := validator.New()

	// Init SQLite
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		panic(err)
	}
	if err := sqlite.Seed(db); err != nil {
		panic(err)
	}

	store, err := newStorage(cfg)
	if err != nil {
		panic(err)
	}

	// Getting services
	tweetService := service.NewTweetService(db, validate)
	userService := service.NewUserService(db)
	mediaService := service.NewMediaService(db, store)

	// Getting handlers
	tweetRoutes := handler2.NewTweetDefault(tweetService)
	userRoutes := handler2.NewUserDefault(userService)
	mediaRoutes := handler2.NewMediaDefault(mediaService)

	e := echo.New()
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("30M"))

	apiKey := middleware.NewAPIKeyMiddleware()

	// Tweets
	e.POST("/api/tweets", tweetRoutes.CreateTweet, apiKey)
	e.GET("/api/tweets", tweetRoutes.GetFeed, apiKey)
	e.DELETE("/api/tweets/:id", tweetRoutes.DeleteTweet, apiKey)
	e.POST("/api/tweets/:id/likes", tweetRoutes.LikeTweet, apiKey)
	e.DELETE("/api/tweets/:id/likes", tweetRoutes.UnlikeTweet, apiKey)

	// Users
	e.POST("/api/users/:id/follow", userRoutes.Follow, apiKey)
	e.DELETE("/api/users/:id/follow", userRoutes.Unfollow, apiKey)
	e.GET("/api/users/me", userRoutes.GetMe, apiKey)
	e.GET("/api/users/:id", userRoutes.GetUser)

	// Media
	e.POST("/api/medias", mediaRoutes.AddMedia)
	e.Static(cfg.StaticPath, cfg.StaticDir)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}

func newStorage(cfg *config.Settings) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		log.Infof("using s3 media storage, bucket %s", cfg.S3Bucket)
		return storage.NewS3Storage(cfg.S3Region, cfg.S3Bucket)
	}
	return storage.NewLocalStorage(cfg.MediaDir, cfg.MediaPath)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
