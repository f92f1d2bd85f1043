package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/cache"
	"github.com/liqma/backend/internal/featured"
	"github.com/liqma/backend/internal/metrics"
	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/repository"
	"github.com/liqma/backend/internal/types"
	"go.uber.org/zap"
)

// RecipeServiceOptions configures a RecipeService.
type RecipeServiceOptions struct {
	MaxResults     int
	MaxPerCategory int
	// Cache is optional.
	Cache cache.FeaturedCache
	// Rand picks food facts; a time-seeded source is used when nil.
	Rand *rand.Rand
	Log  *zap.Logger
}

// RecipeService handles recipe operations
type RecipeService struct {
	recipes        repository.RecipeRepository
	cache          cache.FeaturedCache
	maxResults     int
	maxPerCategory int
	log            *zap.Logger

	// generation is bumped by every write so a selection computed from an
	// older catalog is never cached.
	generation atomic.Uint64

	randMu sync.Mutex
	rand   *rand.Rand
}

// NewRecipeService creates a new RecipeService instance. Non-positive grid
// limits are rejected with featured.ErrInvalidArgument.
func NewRecipeService(recipes repository.RecipeRepository, opts RecipeServiceOptions) (*RecipeService, error) {
	if opts.MaxResults <= 0 || opts.MaxPerCategory <= 0 {
		return nil, fmt.Errorf("%w: featured limits must be positive (got %d, %d)",
			featured.ErrInvalidArgument, opts.MaxResults, opts.MaxPerCategory)
	}
	r := opts.Rand
	if r == nil {
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1))
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{
		recipes:        recipes,
		cache:          opts.Cache,
		maxResults:     opts.MaxResults,
		maxPerCategory: opts.MaxPerCategory,
		log:            log,
		rand:           r,
	}, nil
}

// Featured returns the home grid: the most liked recipes with at most
// maxPerCategory from any category.
func (s *RecipeService) Featured(ctx context.Context) ([]*models.Recipe, error) {
	key := cache.FeaturedKey(s.maxResults, s.maxPerCategory)
	if s.cache != nil {
		if picked, ok := s.featuredFromCache(ctx, key); ok {
			return picked, nil
		}
	}

	gen := s.generation.Load()
	all, err := s.recipes.List(ctx, repository.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	picked, err := featured.Select(all, s.maxResults, s.maxPerCategory)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.generation.Load() == gen {
		ids := make([]uuid.UUID, len(picked))
		for i, r := range picked {
			ids[i] = r.ID
		}
		if err := s.cache.Set(ctx, key, ids); err != nil {
			s.log.Warn("featured cache write failed", zap.Error(err))
		}
	}
	return picked, nil
}

func (s *RecipeService) featuredFromCache(ctx context.Context, key string) ([]*models.Recipe, bool) {
	ids, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.FeaturedCacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("featured cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		metrics.FeaturedCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	picked := make([]*models.Recipe, 0, len(ids))
	for _, id := range ids {
		r, err := s.recipes.Get(ctx, id)
		if err != nil {
			// stale entry; recompute
			metrics.FeaturedCacheLookups.WithLabelValues("stale").Inc()
			return nil, false
		}
		// likes changed since the entry was written, possibly on another instance
		if n := len(picked); n > 0 && picked[n-1].Likes < r.Likes {
			metrics.FeaturedCacheLookups.WithLabelValues("stale").Inc()
			return nil, false
		}
		picked = append(picked, r)
	}
	metrics.FeaturedCacheLookups.WithLabelValues("hit").Inc()
	return picked, true
}

// Explore applies the explore screen's filters.
func (s *RecipeService) Explore(ctx context.Context, q types.ExploreQuery) ([]*models.Recipe, error) {
	filter := repository.RecipeFilter{
		MinProtein: q.MinProtein,
		Query:      strings.TrimSpace(q.Query),
	}
	if q.DairyFree {
		filter.Tags = append(filter.Tags, "Dairy-Free")
	}
	if q.Category != "" {
		cat, err := models.ParseCategory(q.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Category = cat
	}
	return s.recipes.List(ctx, filter)
}

// CategoryFeeds groups the catalog by category, in display order. Categories
// without recipes are included with an empty list.
func (s *RecipeService) CategoryFeeds(ctx context.Context) ([]types.CategoryFeed, error) {
	all, err := s.recipes.List(ctx, repository.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	byCategory := make(map[models.Category][]*models.Recipe, len(models.Categories))
	for _, r := range all {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}
	feeds := make([]types.CategoryFeed, len(models.Categories))
	for i, c := range models.Categories {
		recipes := byCategory[c]
		if recipes == nil {
			recipes = []*models.Recipe{}
		}
		feeds[i] = types.CategoryFeed{Category: c, Recipes: recipes}
	}
	return feeds, nil
}

func (s *RecipeService) Recipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return s.recipes.Get(ctx, id)
}

func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	cat, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	recipe := &models.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     cat,
		ImageURL:     req.ImageURL,
		AuthorID:     authorID,
		Macros:       req.Macros,
		Tags:         req.Tags,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrInvalidRecipe) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	s.invalidateFeatured(ctx)
	s.log.Info("recipe created", zap.String("recipe_id", recipe.ID.String()), zap.String("category", string(cat)))
	return recipe, nil
}

func (s *RecipeService) Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	r, err := s.recipes.Like(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	s.invalidateFeatured(ctx)
	return r, nil
}

func (s *RecipeService) Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	r, err := s.recipes.Unlike(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	s.invalidateFeatured(ctx)
	return r, nil
}

// Home assembles the home screen for the local time now.
func (s *RecipeService) Home(ctx context.Context, now time.Time) (*types.HomeFeed, error) {
	picked, err := s.Featured(ctx)
	if err != nil {
		return nil, err
	}
	return &types.HomeFeed{
		Greeting:   Greeting(now),
		FoodFact:   s.foodFact(),
		Featured:   picked,
		Categories: models.Categories,
	}, nil
}

func (s *RecipeService) foodFact() string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return foodFacts[s.rand.IntN(len(foodFacts))]
}

func (s *RecipeService) invalidateFeatured(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("featured cache invalidation failed", zap.Error(err))
	}
}
