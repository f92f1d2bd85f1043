package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
)

// MemoryRecipeRepository keeps the catalog in process. It is used by tests
// and by the server's in-memory mode.
type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	recipes map[uuid.UUID]*models.Recipe
	likes   map[[2]uuid.UUID]struct{}
}

func NewMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{
		recipes: make(map[uuid.UUID]*models.Recipe),
		likes:   make(map[[2]uuid.UUID]struct{}),
	}
}

func (r *MemoryRecipeRepository) List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Recipe, 0, len(r.order))
	for _, id := range r.order {
		rec := r.recipes[id]
		if filter.Matches(rec) {
			out = append(out, copyRecipe(rec))
		}
	}
	return out, nil
}

func (r *MemoryRecipeRepository) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecipe(rec), nil
}

func (r *MemoryRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := ValidateRecipe(recipe); err != nil {
		return err
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now
	recipe.Embedding = models.GenerateEmbedding(recipe.Title + " " + recipe.Description)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recipes[recipe.ID]; !exists {
		r.order = append(r.order, recipe.ID)
	}
	r.recipes[recipe.ID] = copyRecipe(recipe)
	return nil
}

func (r *MemoryRecipeRepository) Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrNotFound
	}
	key := [2]uuid.UUID{userID, recipeID}
	if _, liked := r.likes[key]; !liked {
		r.likes[key] = struct{}{}
		rec.Likes++
	}
	return copyRecipe(rec), nil
}

func (r *MemoryRecipeRepository) Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[recipeID]
	if !ok {
		return nil, ErrNotFound
	}
	key := [2]uuid.UUID{userID, recipeID}
	if _, liked := r.likes[key]; liked {
		delete(r.likes, key)
		if rec.Likes > 0 {
			rec.Likes--
		}
	}
	return copyRecipe(rec), nil
}

func copyRecipe(r *models.Recipe) *models.Recipe {
	c := *r
	c.Tags = slices.Clone(r.Tags)
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Instructions = slices.Clone(r.Instructions)
	return &c
}

// MemoryUserRepository is the in-process UserRepository.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	email := normalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return ErrDuplicateEmail
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Email = email

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[email] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}
