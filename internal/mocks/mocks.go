// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/service"
	"github.com/liqma/backend/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

func (m *MockRecipeService) recipes(args mock.Arguments) ([]*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Featured(ctx context.Context) ([]*models.Recipe, error) {
	return m.recipes(m.Called(ctx))
}

func (m *MockRecipeService) Explore(ctx context.Context, q types.ExploreQuery) ([]*models.Recipe, error) {
	return m.recipes(m.Called(ctx, q))
}

func (m *MockRecipeService) CategoryFeeds(ctx context.Context) ([]types.CategoryFeed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CategoryFeed), args.Error(1)
}

func (m *MockRecipeService) Recipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, authorID, req))
}

func (m *MockRecipeService) Like(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, recipeID))
}

func (m *MockRecipeService) Unlike(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, userID, recipeID))
}

func (m *MockRecipeService) Home(ctx context.Context, now time.Time) (*types.HomeFeed, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HomeFeed), args.Error(1)
}
