package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/middleware"
	"github.com/liqma/backend/internal/models"
	"github.com/liqma/backend/internal/service"
	"github.com/liqma/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
	log           *zap.Logger
	now           func() time.Time
}

func NewRecipeHandler(recipeService service.IRecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, log: log, now: time.Now}
}

// Home returns the home screen. The greeting follows the optional "tz"
// query parameter, an IANA zone name; server time is used otherwise.
func (h *RecipeHandler) Home(c *gin.Context) {
	now := h.now()
	if tz := c.Query("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time zone"})
			return
		}
		now = now.In(loc)
	}

	home, err := h.recipeService.Home(c.Request.Context(), now)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *RecipeHandler) Featured(c *gin.Context) {
	recipes, err := h.recipeService.Featured(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// ListRecipes is the explore screen: q, min_protein, dairy_free and category.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q types.ExploreQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	recipes, err := h.recipeService.Explore(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) Categories(c *gin.Context) {
	feeds, err := h.recipeService.CategoryFeeds(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": feeds})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Recipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	h.toggleLike(c, h.recipeService.Like)
}

func (h *RecipeHandler) UnlikeRecipe(c *gin.Context) {
	h.toggleLike(c, h.recipeService.Unlike)
}

type likeFunc func(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)

func (h *RecipeHandler) toggleLike(c *gin.Context, apply likeFunc) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := apply(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}
