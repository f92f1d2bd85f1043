package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/api"
	"github.com/liqma/backend/internal/featured"
	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/repository"
	"github.com/liqma/backend/internal/router"
	"github.com/liqma/backend/internal/service"
	"github.com/liqma/backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	recipes *repository.MemoryRecipeRepository
}

func newTestEnv(t *testing.T, avatars storage.AvatarStore, checks map[string]api.HealthCheckFunc) *testEnv {
	t.Helper()
	log := zap.NewNop()
	recipes := repository.NewMemoryRecipeRepository()
	authService := service.NewAuthService(repository.NewMemoryUserRepository(), avatars, "test-secret", time.Hour, log)
	recipeService, err := service.NewRecipeService(recipes, service.RecipeServiceOptions{
		MaxResults:     featured.DefaultMaxResults,
		MaxPerCategory: featured.DefaultMaxPerCategory,
		Log:            log,
	})
	require.NoError(t, err)

	return &testEnv{
		router: router.SetupRouter(router.Deps{
			Auth:         authService,
			Recipes:      recipeService,
			HealthChecks: checks,
			Log:          log,
		}),
		recipes: recipes,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/users/register", map[string]string{
		"name": name, "email": email, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (e *testEnv) seed(t *testing.T, title string, cat models.Category, likes int, tags ...string) *models.Recipe {
	t.Helper()
	r := &models.Recipe{Title: title, Category: cat, Likes: likes, Rating: 4, Tags: tags, Macros: models.Macros{Protein: likes}}
	require.NoError(t, e.recipes.Create(context.Background(), r))
	return r
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, nil, map[string]api.HealthCheckFunc{
		"database": func(context.Context) error { return nil },
	})
	w := env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","dependencies":{"database":"ok"}}`, w.Body.String())

	env = newTestEnv(t, nil, map[string]api.HealthCheckFunc{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})
	w = env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","dependencies":{"database":"ok","redis":"unavailable"}}`, w.Body.String())
}
