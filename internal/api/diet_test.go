package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
)

func vegetarianProfile() gin.H {
	return gin.H{
		"age":               29,
		"weight":            65,
		"height":            168,
		"dietaryPreference": "vegetarian",
	}
}

func parathaMeals() []service.MealCandidate {
	return []service.MealCandidate{
		{
			Name:     "Paratha",
			Time:     "08:00 AM",
			Calories: 350,
			Macros:   models.Macros{Protein: 10, Carbs: 50, Fats: 12},
		},
	}
}

func TestRecommendTrackNutrientsScenario(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, w.Code)

	env.recommender.On("Recommend", mock.Anything, mock.Anything).Return(parathaMeals(), nil)

	// Generate today's plan.
	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plan models.DietPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	require.Len(t, plan.Meals, 1)
	assert.Equal(t, "Paratha", plan.Meals[0].Name)
	assert.False(t, plan.Meals[0].Completed)

	// The stored plan is served for today's date.
	today := time.Now().UTC().Format("2006-01-02")
	w = env.request(t, http.MethodGet, "/diet/plan/"+today, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.DietPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, plan.ID, fetched.ID)

	// Mark the meal complete.
	w = env.request(t, http.MethodPost, "/diet/track", token, gin.H{
		"date":      today,
		"mealId":    plan.Meals[0].ID.String(),
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Totals now reflect exactly that meal's macros.
	w = env.request(t, http.MethodGet, "/diet/nutrients", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var totals models.Macros
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, models.Macros{Protein: 10, Carbs: 50, Fats: 12}, totals)

	// Generating again returns the same plan without consulting the gateway.
	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.recommender.AssertNumberOfCalls(t, "Recommend", 1)
}

func TestRecommendWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendGatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, w.Code)

	env.recommender.On("Recommend", mock.Anything, mock.Anything).Return(nil, service.ErrGatewayUnavailable)

	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecommendGatewayErrorPayload(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, w.Code)

	env.recommender.On("Recommend", mock.Anything, mock.Anything).
		Return(nil, &service.GatewayError{Message: "unsupported region"})

	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported region")
}

func TestGetPlanNotFound(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodGet, "/diet/plan/2024-03-05", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/diet/plan/not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNutrientsWithoutPlan(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodGet, "/diet/nutrients", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackMealNotFound(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	// No plan for the date.
	w := env.request(t, http.MethodPost, "/diet/track", token, gin.H{
		"date":      "2024-03-05",
		"mealId":    uuid.New().String(),
		"completed": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Plan exists but the meal does not.
	profileResp := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, profileResp.Code)
	env.recommender.On("Recommend", mock.Anything, mock.Anything).Return(parathaMeals(), nil)
	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	today := time.Now().UTC().Format("2006-01-02")
	w = env.request(t, http.MethodPost, "/diet/track", token, gin.H{
		"date":      today,
		"mealId":    uuid.New().String(),
		"completed": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackMealAliasRoute(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, w.Code)
	env.recommender.On("Recommend", mock.Anything, mock.Anything).Return(parathaMeals(), nil)
	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.DietPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	today := time.Now().UTC().Format("2006-01-02")
	w = env.request(t, http.MethodPost, "/user/diet/track", token, gin.H{
		"date":      today,
		"mealId":    plan.Meals[0].ID.String(),
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestTrackMealAcceptsTimestampDates(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.signup(t, "alice", "alice@example.com")

	w := env.request(t, http.MethodPost, "/user/profile", token, vegetarianProfile())
	require.Equal(t, http.StatusOK, w.Code)
	env.recommender.On("Recommend", mock.Anything, mock.Anything).Return(parathaMeals(), nil)
	w = env.request(t, http.MethodPost, "/diet/recommend", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.DietPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	stamp := fmt.Sprintf("%sT09:30:00.000Z", time.Now().UTC().Format("2006-01-02"))
	w = env.request(t, http.MethodPost, "/diet/track", token, gin.H{
		"date":      stamp,
		"mealId":    plan.Meals[0].ID.String(),
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
