package container

import (
	"context"
	"fmt"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	"blog-backend/internal/domains/post"
	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"

	"blog-backend/internal/domains/like"
	likeHandler "blog-backend/internal/domains/like/handler"
	likeRepo "blog-backend/internal/domains/like/repository"
	likeService "blog-backend/internal/domains/like/service"
)

const migrationsDir = "migrations"

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    storage.ObjectStorage
	Mail       email.EmailService
	Identity   identity.Provider
	JWTManager *jwt.Manager

	AuthorRepo author.Repository
	PostRepo   post.Repository
	LikeRepo   like.Repository

	AuthorService author.Service
	PostService   post.Service
	LikeService   like.Service

	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.PostHandler
	LikeHandler   *likeHandler.LikeHandler
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := c.DB.Migrate(ctx, migrationsDir); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Cache = redisClient

	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	c.Storage = objectStorage

	c.Mail = email.NewSMTPEmailService(cfg.SMTP)
	c.Identity = identity.NewGoogleProvider(cfg.Google)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.PostRepo = postRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.LikeRepo = likeRepo.NewPostgresRepository(c.DB.Pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.JWTManager, c.Mail)
	c.PostService = postService.NewPostService(c.PostRepo)
	c.LikeService = likeService.NewLikeService(c.LikeRepo, c.PostRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Storage, c.Identity, cfg.Google)
	c.PostHandler = postHandler.NewPostHandler(c.PostService, c.Storage)
	c.LikeHandler = likeHandler.NewLikeHandler(c.LikeService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases infrastructure resources, in reverse order of
// construction.
func (c *Container) Cleanup(ctx context.Context) {
	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("close redis", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("container cleaned up", nil)
}

// HealthCheck pings the stateful backends.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
