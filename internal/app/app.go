// Package app wires configuration, storage and services into the HTTP
// handler served by cmd/api.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/liqma/backend/config"
	"github.com/liqma/backend/internal/api"
	"github.com/liqma/backend/internal/cache"
	"github.com/liqma/backend/internal/database"
	"github.com/liqma/backend/internal/middleware"
	"github.com/liqma/backend/internal/repository"
	"github.com/liqma/backend/internal/router"
	"github.com/liqma/backend/internal/seed"
	"github.com/liqma/backend/internal/service"
	"github.com/liqma/backend/internal/storage"
)

const (
	// DemoSeed and DemoRecipes size the catalog loaded in memory mode.
	DemoSeed    = 1
	DemoRecipes = 20
)

// Stores are the repositories backing the services.
type Stores struct {
	DB      *gorm.DB
	Recipes repository.RecipeRepository
	Users   repository.UserRepository
}

// OpenStores connects to the configured database and migrates it. The
// memory driver keeps everything in process and loads the demo catalog.
func OpenStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Stores, error) {
	if cfg.DBDriver == "memory" {
		s := &Stores{
			Recipes: repository.NewMemoryRecipeRepository(),
			Users:   repository.NewMemoryUserRepository(),
		}
		st, err := seed.Load(ctx, seed.NewGenerator(DemoSeed), s.Users, s.Recipes, DemoRecipes)
		if err != nil {
			return nil, fmt.Errorf("failed to load demo catalog: %w", err)
		}
		log.Info("using in-memory store", zap.Int("recipes", st.Recipes), zap.Int("users", st.Users))
		return s, nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return nil, err
	}
	return &Stores{
		DB:      db,
		Recipes: repository.NewGormRecipeRepository(db),
		Users:   repository.NewGormUserRepository(db),
	}, nil
}

// Close releases the database connection, if any.
func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// App is the assembled HTTP application.
type App struct {
	Handler http.Handler
	closers []func() error
}

// Close releases the connections New opened.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// New builds the services and routes on top of stores. Redis and S3 are
// optional and only used when configured.
func New(ctx context.Context, cfg *config.Config, stores *Stores, log *zap.Logger) (*App, error) {
	a := &App{}
	checks := map[string]api.HealthCheckFunc{}
	if stores.DB != nil {
		checks["database"] = func(ctx context.Context) error { return database.HealthCheck(ctx, stores.DB) }
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		return nil, err
	}
	var featuredCache cache.FeaturedCache
	var loginLimiter gin.HandlerFunc
	if redisClient != nil {
		a.closers = append(a.closers, redisClient.Close)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		featuredCache = cache.NewBreakerFeaturedCache(
			cache.NewRedisFeaturedCache(redisClient, cfg.FeaturedCacheTTL),
			cache.DefaultBreakerSettings, log)
		loginLimiter = middleware.NewLoginRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow, log).RateLimitMiddleware()
	} else {
		log.Info("redis not configured; login throttling is per instance")
		loginLimiter = middleware.NewLocalRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow).RateLimitMiddleware()
	}

	var avatars storage.AvatarStore
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if store := storage.NewS3AvatarStore(s3cfg); store != nil {
		if err := s3cfg.SetupBucketPolicy(ctx); err != nil {
			log.Warn("failed to set avatar bucket policy", zap.Error(err))
		}
		avatars = store
	} else {
		log.Info("S3 not configured; sign-ups use generated avatars")
	}

	authService := service.NewAuthService(stores.Users, avatars, cfg.JWTSecret, cfg.TokenTTL, log)
	recipeService, err := service.NewRecipeService(stores.Recipes, service.RecipeServiceOptions{
		MaxResults:     cfg.FeaturedMaxResults,
		MaxPerCategory: cfg.FeaturedMaxPerCategory,
		Cache:          featuredCache,
		Log:            log,
	})
	if err != nil {
		return nil, err
	}

	a.Handler = router.SetupRouter(router.Deps{
		Auth:           authService,
		Recipes:        recipeService,
		HealthChecks:   checks,
		LoginLimiter:   loginLimiter,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Log:            log,
	})
	return a, nil
}
