package container

import (
	"context"
	"fmt"
	"time"

	"movielist-backend/internal/config"
	"movielist-backend/internal/domains/movie/gateway"
	gatewaymock "movielist-backend/internal/domains/movie/gateway/mock"
	"movielist-backend/internal/domains/movie/gateway/tmdb"
	movieHandler "movielist-backend/internal/domains/movie/handler"
	movieRepo "movielist-backend/internal/domains/movie/repository"
	movieService "movielist-backend/internal/domains/movie/service"
	infraCache "movielist-backend/internal/infrastructure/cache"
	"movielist-backend/internal/infrastructure/database"
	"movielist-backend/pkg/cache"
	"movielist-backend/pkg/flash"
	"movielist-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the application.
// Initialization order: config, infrastructure, repository, gateway,
// service, handlers.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Flash  *flash.Manager

	// Data access and external catalog
	MovieRepo     movieRepo.Repository
	MovieSearcher gateway.MovieSearcher

	// Business logic
	MovieService movieService.ServiceInterface

	// HTTP
	MovieWebHandler *movieHandler.WebHandler
	MovieAPIHandler *movieHandler.APIHandler
}

// NewContainer builds the dependency graph. Any failure aborts startup,
// except Redis which degrades to a no-op cache.
func NewContainer() (*Container, error) {
	logger.Info("initializing container", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"tmdb_mock":   cfg.TMDB.UseMock,
	})

	// ========================================
	// STEP 2: DATABASE + SCHEMA
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 3: CACHE
	// ========================================
	c.initCache()

	c.Flash = flash.NewManager(cfg.App.SecretKey, cfg.IsProduction())

	// ========================================
	// STEP 4: DOMAIN LAYERS
	// ========================================
	if err := c.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	if err := c.initGateways(); err != nil {
		return nil, fmt.Errorf("failed to init gateways: %w", err)
	}
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	if err := c.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initDatabase() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if err := database.Migrate(ctx, c.Config.Database.ConnectionString()); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, TMDB responses will not be cached", map[string]interface{}{
			"error": err.Error(),
		})
		_ = redisCache.Close()
		c.Cache = cache.Noop{}
		return
	}
	c.Cache = redisCache
}

func (c *Container) initRepositories() error {
	c.MovieRepo = movieRepo.NewPostgresRepository(c.DB.Pool)
	return nil
}

func (c *Container) initGateways() error {
	cfg := c.Config.TMDB

	var upstream gateway.MovieSearcher
	if cfg.UseMock {
		logger.Warn("using offline movie catalog instead of TMDB", nil)
		upstream = gatewaymock.NewCatalog(cfg.ImageBaseURL)
	} else {
		client, err := tmdb.New(tmdb.Config{
			APIToken:     cfg.APIToken,
			BaseURL:      cfg.BaseURL,
			ImageBaseURL: cfg.ImageBaseURL,
			Language:     cfg.Language,
			Timeout:      cfg.Timeout,
		})
		if err != nil {
			return err
		}
		upstream = client
	}

	c.MovieSearcher = gateway.NewCachedSearcher(upstream, c.Cache, cfg.SearchTTL, cfg.DetailTTL)
	return nil
}

func (c *Container) initServices() error {
	c.MovieService = movieService.NewService(c.MovieRepo, c.MovieSearcher)
	return nil
}

func (c *Container) initHandlers() error {
	c.MovieWebHandler = movieHandler.NewWebHandler(c.MovieService, c.Flash)
	c.MovieAPIHandler = movieHandler.NewAPIHandler(c.MovieService)
	return nil
}

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	logger.Info("cleaning up container resources", nil)

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
}
