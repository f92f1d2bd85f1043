package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/mocks"
	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/repository"
	"github.com/liqma/backend/internal/router"
	"github.com/liqma/backend/internal/types"
)

func TestServiceErrorsMapToStatuses(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{"invalid recipe", repository.ErrInvalidRecipe, http.StatusBadRequest, `{"error":"invalid recipe"}`},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mocks.MockAuthService)
			auth.On("ValidateToken", "tok").Return(&types.TokenClaims{UserID: userID}, nil)
			recipes := new(mocks.MockRecipeService)
			recipes.On("Like", mock.Anything, userID, mock.Anything).Return(nil, tt.err)

			r := router.SetupRouter(router.Deps{Auth: auth, Recipes: recipes, Log: zap.NewNop()})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/"+uuid.NewString()+"/like", nil)
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
			recipes.AssertExpectations(t)
		})
	}
}

func TestFeaturedFailureIsInternalError(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("Featured", mock.Anything).Return(nil, errors.New("db down"))
	recipes.On("Recipe", mock.Anything, mock.Anything).Return(&models.Recipe{Title: "ok"}, nil)

	r := router.SetupRouter(router.Deps{Auth: new(mocks.MockAuthService), Recipes: recipes, Log: zap.NewNop()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/featured", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
