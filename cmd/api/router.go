package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	guard := middleware.Auth(c.JWTManager)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(api, c, guard)
		setupPostRoutes(api, c, guard)
		setupLikeRoutes(api, c, guard)
	}

	return router
}

func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container, guard gin.HandlerFunc) {
	authors := api.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Register)
		authors.POST("/login", c.AuthorHandler.Login)
		authors.GET("/login-google", c.AuthorHandler.LoginGoogle)
		authors.GET("/callback-google", c.AuthorHandler.CallbackGoogle)

		authors.GET("", c.AuthorHandler.List)
		authors.GET("/me", guard, c.AuthorHandler.GetMe)
		authors.GET("/:userId", c.AuthorHandler.GetByID)
		authors.GET("/:userId/blogPosts", guard, c.PostHandler.ListByAuthor)

		authors.PUT("/:userId", guard, c.AuthorHandler.UpdateProfile)
		authors.PATCH("/:userId/avatar", guard, c.AuthorHandler.UpdateAvatar)
		authors.DELETE("/:userId", guard, c.AuthorHandler.Delete)
	}
}

func setupPostRoutes(api *gin.RouterGroup, c *container.Container, guard gin.HandlerFunc) {
	posts := api.Group("/blogPost")
	{
		// The paginated listing needs a token; a single post is open.
		posts.GET("", guard, c.PostHandler.List)
		posts.GET("/:postId", c.PostHandler.GetByID)

		posts.POST("", guard, c.PostHandler.Create)
		posts.PUT("/:postId", guard, c.PostHandler.Update)
		posts.PATCH("/:postId/cover", guard, c.PostHandler.UpdateCover)
		posts.DELETE("/:postId", guard, c.PostHandler.Delete)

		comments := posts.Group("/:postId/comments", guard)
		{
			comments.GET("", c.PostHandler.ListComments)
			comments.GET("/:commentId", c.PostHandler.GetComment)
			comments.POST("", c.PostHandler.AddComment)
			comments.PUT("/:commentId", c.PostHandler.EditComment)
			comments.DELETE("/:commentId", c.PostHandler.RemoveComment)
		}
	}
}

func setupLikeRoutes(api *gin.RouterGroup, c *container.Container, guard gin.HandlerFunc) {
	likes := api.Group("/posts/:postId/likes")
	{
		likes.GET("", c.LikeHandler.ListLikers)
		likes.GET("/check", guard, c.LikeHandler.Check)
		likes.POST("/toggle", guard, c.LikeHandler.Toggle)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			response.Error(ctx, http.StatusServiceUnavailable, "unhealthy")
			return
		}
		response.JSON(ctx, http.StatusOK, gin.H{"status": "ok"})
	}
}
