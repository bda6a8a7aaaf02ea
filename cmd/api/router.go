package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"movielist-backend/internal/shared/middleware"
	"movielist-backend/internal/shared/web"
	"movielist-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.SetHTMLTemplate(web.MustTemplates())

	setupWebRoutes(router, c)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupMovieRoutes(v1, c)
	}

	return router
}

// ========================================
// HTML ROUTES
// ========================================
func setupWebRoutes(router *gin.Engine, c *container.Container) {
	h := c.MovieWebHandler

	router.GET("/", h.Home)
	router.GET("/add_movie", h.AddMovie)
	router.POST("/add_movie", h.AddMovie)
	router.GET("/find", h.FindMovie)
	router.GET("/edit_movie/:id", h.EditMovie)
	router.POST("/edit_movie/:id", h.EditMovie)
	router.POST("/delete_movie/:id", h.DeleteMovie)
}

// ========================================
// MOVIE API ROUTES
// ========================================
func setupMovieRoutes(v1 *gin.RouterGroup, c *container.Container) {
	h := c.MovieAPIHandler

	movies := v1.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.POST("", h.ImportMovie)
		movies.GET("/export", h.ExportMovies)
		movies.POST("/rankings/recompute", h.RecomputeRankings)
		movies.GET("/:id", h.GetMovie)
		movies.PUT("/:id", h.UpdateMovie)
		movies.DELETE("/:id", h.DeleteMovie)
	}

	v1.GET("/search", h.SearchMovies)
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := gin.H{"status": "ok"}
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus["status"] = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus["status"] = "error: " + err.Error()
				health["status"] = "degraded"
			}
			if stats, err := appCtx.DB.Stats(); err == nil {
				dbStatus["pool"] = stats
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		// Stored movies
		if appCtx.MovieRepo != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if n, err := appCtx.MovieRepo.Count(ctx); err != nil {
				dbStatus["count"] = "error: " + err.Error()
			} else {
				health["movies"] = n
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
