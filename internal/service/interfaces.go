package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Featured(ctx context.Context) ([]*models.Recipe, error)
	Explore(ctx context.Context, q types.ExploreQuery) ([]*models.Recipe, error)
	CategoryFeeds(ctx context.Context) ([]types.CategoryFeed, error)
	Recipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	Home(ctx context.Context, now time.Time) (*types.HomeFeed, error)
}
