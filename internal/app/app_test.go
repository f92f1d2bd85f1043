package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liqma/backend/config"
	"github.com/liqma/backend/internal/repository"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Env:                    config.Test,
		DBDriver:               driver,
		JWTSecret:              "test-secret",
		TokenTTL:               time.Hour,
		FeaturedMaxResults:     8,
		FeaturedMaxPerCategory: 2,
		FeaturedCacheTTL:       time.Minute,
		LoginRateLimit:         10,
		LoginRateWindow:        time.Minute,
	}
}

func TestMemoryModeServesDemoCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := testConfig("memory")
	log := zap.NewNop()

	stores, err := OpenStores(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	all, err := stores.Recipes.List(ctx, repository.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, DemoRecipes)

	a, err := New(ctx, cfg, stores, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/featured", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []struct {
			Category string `json:"category"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recipes, 8)

	w = httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSQLiteStores(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig("sqlite")
	cfg.SQLitePath = filepath.Join(t.TempDir(), "liqma.db")
	log := zap.NewNop()

	stores, err := OpenStores(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })
	require.NotNil(t, stores.DB)

	a, err := New(ctx, cfg, stores, log)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","dependencies":{"database":"ok"}}`, w.Body.String())
}

func TestOpenStoresRejectsUnknownDriver(t *testing.T) {
	_, err := OpenStores(context.Background(), testConfig("oracle"), zap.NewNop())
	assert.Error(t, err)
}
