// Package repository holds the data-access layer for recipes and users.
// Services depend only on the interfaces declared here.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRecipe is returned when a recipe fails validation on write.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("user already exists")
)

// RecipeFilter narrows List. Zero values match everything.
type RecipeFilter struct {
	Category   models.Category
	MinProtein int
	// Tags must all be present on a recipe.
	Tags []string
	// Query matches title, category or any tag, case-insensitively.
	Query string
}

// RecipeRepository is the recipe catalog. List returns recipes in creation
// order unless a Query asks a backend for relevance ordering.
type RecipeRepository interface {
	List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
}

// UserRepository defines the user data-access contract.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ValidateRecipe rejects recipes the featured selector and the feeds cannot
// rank. Every repository calls it before writing.
func ValidateRecipe(r *models.Recipe) error {
	var problems []string
	if strings.TrimSpace(r.Title) == "" {
		problems = append(problems, "title is required")
	}
	if !r.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", r.Category))
	}
	if r.Likes < 0 {
		problems = append(problems, "likes must not be negative")
	}
	if r.Rating < 0 || r.Rating > 5 {
		problems = append(problems, "rating must be between 0 and 5")
	}
	m := r.Macros
	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fats < 0 {
		problems = append(problems, "macros must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRecipe, strings.Join(problems, "; "))
	}
	return nil
}

// Matches reports whether r satisfies f. Backends without a query language
// filter with it directly.
func (f RecipeFilter) Matches(r *models.Recipe) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if r.Macros.Protein < f.MinProtein {
		return false
	}
	for _, tag := range f.Tags {
		if !r.Tags.Contains(tag) {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) || strings.Contains(strings.ToLower(string(r.Category)), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
