package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
)

// DietHandler serves the plan lifecycle: generation, lookup, meal tracking
// and nutrient totals.
type DietHandler struct {
	planService *service.PlanService
}

func NewDietHandler(planService *service.PlanService) *DietHandler {
	return &DietHandler{planService: planService}
}

// RegisterRoutes wires the diet endpoints. generationLimiters run only on the
// recommend endpoint, which fans out to the external recommender.
func (h *DietHandler) RegisterRoutes(router *gin.RouterGroup, generationLimiters ...gin.HandlerFunc) {
	diet := router.Group("/diet")
	{
		diet.POST("/recommend", append(generationLimiters, h.Recommend)...)
		diet.GET("/plan/:date", h.GetPlan)
		diet.GET("/nutrients", h.Nutrients)
		diet.POST("/track", h.TrackMeal)
	}
	// Legacy alias kept for older clients.
	router.POST("/user/diet/track", h.TrackMeal)
}

func (h *DietHandler) Recommend(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	plan, err := h.planService.GenerateDailyPlan(c.Request.Context(), userID, time.Now())
	if err != nil {
		var gatewayErr *service.GatewayError
		switch {
		case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User profile not found"})
		case errors.As(err, &gatewayErr):
			log.Printf("[DietHandler] recommender reported error: %v", gatewayErr)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating diet plan", "error": gatewayErr.Message})
		case errors.Is(err, service.ErrGatewayUnavailable), errors.Is(err, service.ErrMalformedResponse):
			log.Printf("[DietHandler] recommendation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating diet plan"})
		default:
			log.Printf("[DietHandler] plan generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error processing diet plan"})
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *DietHandler) GetPlan(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	date, err := parseDay(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Diet plan not found for this date"})
			return
		}
		log.Printf("[DietHandler] get plan failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching diet plan"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *DietHandler) Nutrients(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	totals, err := h.planService.NutrientTotals(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No diet plan found for today"})
			return
		}
		log.Printf("[DietHandler] nutrient totals failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching nutrient data"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

func (h *DietHandler) TrackMeal(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	var req TrackMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tracking payload"})
		return
	}

	date, err := parseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	mealID, err := uuid.Parse(req.MealID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid meal id"})
		return
	}

	plan, err := h.planService.SetMealCompleted(c.Request.Context(), userID, date, mealID, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Diet plan not found for this date"})
		case errors.Is(err, service.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Meal not found"})
		default:
			log.Printf("[DietHandler] track meal failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating meal status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Meal status updated successfully",
		"dietPlan": plan,
	})
}
