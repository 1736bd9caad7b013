// Package container wires the application's dependency graph: config,
// infrastructure, repositories, the aggregation engine, services and HTTP
// handlers, in that order.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/domains/aggregate"
	aggregatePostgres "library-backend/internal/domains/aggregate/postgres"
	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/editor"
	editorHandler "library-backend/internal/domains/editor/handler"
	editorRepo "library-backend/internal/domains/editor/repository"
	editorService "library-backend/internal/domains/editor/service"
	"library-backend/internal/domains/exemplary"
	exemplaryHandler "library-backend/internal/domains/exemplary/handler"
	exemplaryRepo "library-backend/internal/domains/exemplary/repository"
	exemplaryService "library-backend/internal/domains/exemplary/service"
	"library-backend/internal/domains/fusion"
	fusionHandler "library-backend/internal/domains/fusion/handler"
	fusionService "library-backend/internal/domains/fusion/service"
	"library-backend/internal/domains/genre"
	genreHandler "library-backend/internal/domains/genre/handler"
	genreRepo "library-backend/internal/domains/genre/repository"
	genreService "library-backend/internal/domains/genre/service"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Registry holds live fusion sessions; its sweeper runs until
	// Cleanup cancels sweepCtx.
	Registry  *fusion.Registry
	sweepStop context.CancelFunc

	GenreRepo     genre.Repository
	EditorRepo    editor.Repository
	AuthorRepo    author.Repository
	BookRepo      book.Repository
	ExemplaryRepo exemplary.Repository

	Engine aggregate.Engine

	GenreService     genre.Service
	EditorService    editor.Service
	AuthorService    author.Service
	BookService      book.Service
	ExemplaryService exemplary.Service
	FusionService    fusion.Service

	GenreHandler     *genreHandler.GenreHandler
	EditorHandler    *editorHandler.EditorHandler
	AuthorHandler    *authorHandler.AuthorHandler
	BookHandler      *bookHandler.BookHandler
	ExemplaryHandler *exemplaryHandler.ExemplaryHandler
	FusionHandler    *fusionHandler.FusionHandler
}

// NewContainer builds the whole graph. Initialization order matters:
// config, then infrastructure, then repositories, services and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("environment", cfg.App.Environment).Msg("configuration loaded")

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	c.DB = db
	log.Info().Msg("database connected and migrated")

	// Redis failure is not fatal; the catalog runs cache-less on a Noop.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		c.Cache = cache.Noop{}
	} else {
		c.Cache = redisCache
		log.Info().Msg("redis connected")
	}

	c.Registry = fusion.NewRegistry(cfg.Fusion.SessionTTL)
	sweepCtx, sweepStop := context.WithCancel(context.Background())
	c.sweepStop = sweepStop
	c.Registry.StartSweeper(sweepCtx, cfg.Fusion.SweepInterval)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.GenreRepo = genreRepo.NewPostgresRepository(pool, c.Cache)
	c.EditorRepo = editorRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.ExemplaryRepo = exemplaryRepo.NewPostgresRepository(pool)

	c.Engine = aggregatePostgres.NewEngine(pool)
}

func (c *Container) initServices() {
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.EditorService = editorService.NewEditorService(c.EditorRepo, c.Engine)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Engine)
	c.BookService = bookService.NewBookService(c.BookRepo, c.Engine)
	c.ExemplaryService = exemplaryService.NewExemplaryService(c.ExemplaryRepo)
	c.FusionService = fusionService.NewFusionService(c.BookRepo, c.Engine, c.Registry)
}

func (c *Container) initHandlers() {
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.EditorHandler = editorHandler.NewEditorHandler(c.EditorService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ExemplaryHandler = exemplaryHandler.NewExemplaryHandler(c.ExemplaryService)
	c.FusionHandler = fusionHandler.NewFusionHandler(c.FusionService)
}

// Cleanup releases long-lived resources in reverse initialization order.
func (c *Container) Cleanup() {
	if c.sweepStop != nil {
		c.sweepStop()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("container cleaned up")
}
