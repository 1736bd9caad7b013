package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupGenreRoutes(v1, c)
		setupEditorRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupExemplaryRoutes(v1, c)
		setupFusionRoutes(v1, c)
	}

	return router
}

func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	genres := v1.Group("/genres")
	{
		genres.POST("", c.GenreHandler.Create)
		genres.GET("", c.GenreHandler.GetAll)
		genres.GET("/:id", c.GenreHandler.GetByID)
		genres.PUT("/:id", c.GenreHandler.Update)
		genres.DELETE("/:id", c.GenreHandler.Delete)
	}
}

func setupEditorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	editors := v1.Group("/editors")
	{
		editors.POST("", c.EditorHandler.Create)
		editors.GET("", c.EditorHandler.GetAll)
		editors.GET("/:id", c.EditorHandler.GetByID)
		editors.PUT("/:id", c.EditorHandler.Update)
		editors.DELETE("/:id", c.EditorHandler.Delete)
	}
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.GetAll)
		authors.POST("/stats", c.AuthorHandler.BatchStats)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PUT("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.GetAll)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)

		// An exemplary is always reached through its book on the write
		// side; standalone reads go through /exemplaries.
		books.GET("/:id/exemplaries", c.ExemplaryHandler.GetAll)
		books.POST("/:id/exemplaries", c.ExemplaryHandler.Create)
		books.POST("/:id/exemplaries/batch", c.ExemplaryHandler.CreateBatch)
	}
}

func setupExemplaryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	exemplaries := v1.Group("/exemplaries")
	{
		exemplaries.GET("/:id", c.ExemplaryHandler.GetByID)
		exemplaries.PUT("/:id", c.ExemplaryHandler.Update)
		exemplaries.DELETE("/:id", c.ExemplaryHandler.Delete)
	}
}

func setupFusionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	fusion := v1.Group("/fusion")
	{
		fusion.POST("", c.FusionHandler.Start)
		fusion.POST("/:id/master", c.FusionHandler.ChooseMaster)
		fusion.POST("/:id/fuse", c.FusionHandler.Fuse)
		fusion.POST("/:id/confirm", c.FusionHandler.Confirm)
		fusion.POST("/:id/cancel", c.FusionHandler.Cancel)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "DATABASE_DOWN", err.Error())
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
		})
	}
}
