package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/api"
	"github.com/liqma/backend/internal/middleware"
	"github.com/liqma/backend/internal/service"
)

// Deps are the services the routes are served from. LoginLimiter and
// HealthChecks are optional; LoginLimiter guards /users.
type Deps struct {
	Auth         service.IAuthService
	Recipes      service.IRecipeService
	HealthChecks map[string]api.HealthCheckFunc
	LoginLimiter gin.HandlerFunc
	CORSOrigins  []string
	// TrustedProxies may set X-Forwarded-For; nil trusts none.
	TrustedProxies []string
	Log            *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(d Deps) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Log.Warn("invalid trusted proxies; trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Recovery(d.Log))
	router.Use(middleware.RequestLogger(d.Log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.ErrorHandler(d.Log))

	authHandler := api.NewAuthHandler(d.Auth, d.Log)
	recipeHandler := api.NewRecipeHandler(d.Recipes, d.Log)
	healthHandler := api.NewHealthHandler(d.HealthChecks, d.Log)
	requireAuth := middleware.AuthMiddleware(d.Auth)

	router.GET("/healthz", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes
	users := router.Group("/users")
	if d.LoginLimiter != nil {
		users.Use(d.LoginLimiter)
	}
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	v1 := router.Group("/api/v1")
	v1.GET("/home", recipeHandler.Home)
	v1.GET("/users/me", requireAuth, authHandler.Me)

	recipes := v1.Group("/recipes")
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/featured", recipeHandler.Featured)
		recipes.GET("/categories", recipeHandler.Categories)
		recipes.GET("/:id", recipeHandler.GetRecipe)
		recipes.POST("", requireAuth, recipeHandler.CreateRecipe)
		recipes.POST("/:id/like", requireAuth, recipeHandler.LikeRecipe)
		recipes.DELETE("/:id/like", requireAuth, recipeHandler.UnlikeRecipe)
	}

	return router
}
