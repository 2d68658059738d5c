package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/middleware"
)

// SetupRouter configures the application routes. generationLimiter guards the
// plan-generation endpoint and may be nil when Redis is not configured.
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	dietHandler *api.DietHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
	generationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Signup and login are the only unauthenticated endpoints.
	authHandler.RegisterRoutes(router.Group(""))

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profileHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)

		var limiters []gin.HandlerFunc
		if generationLimiter != nil {
			limiters = append(limiters, generationLimiter.RateLimitMiddleware())
		}
		dietHandler.RegisterRoutes(protected, limiters...)
	}

	return router
}
