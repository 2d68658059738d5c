package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/models"
)

func testProfile() *models.UserProfile {
	return &models.UserProfile{
		Age:               30,
		Weight:            70,
		Height:            172,
		DietaryPreference: models.DietVegetarian,
		Allergies:         models.JSONBStringArray{"peanuts"},
		HealthConditions:  models.JSONBStringArray{},
	}
}

func TestHTTPRecommenderSuccess(t *testing.T) {
	var received models.UserProfile
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meals": []map[string]any{
				{
					"name":     "Paratha",
					"time":     "08:00 AM",
					"calories": 350,
					"macros":   map[string]float64{"protein": 10, "carbs": 50, "fats": 12},
				},
			},
		})
	}))
	defer srv.Close()

	rec := NewHTTPRecommender(srv.URL, 5*time.Second)
	meals, err := rec.Recommend(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, models.DietVegetarian, received.DietaryPreference)
	require.Len(t, meals, 1)
	assert.Equal(t, "Paratha", meals[0].Name)
	assert.Equal(t, 350.0, meals[0].Calories)
	assert.Equal(t, models.Macros{Protein: 10, Carbs: 50, Fats: 12}, meals[0].Macros)
	assert.False(t, meals[0].Completed)
}

func TestHTTPRecommenderErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no dataset for region mars"})
	}))
	defer srv.Close()

	rec := NewHTTPRecommender(srv.URL, 5*time.Second)
	_, err := rec.Recommend(context.Background(), testProfile())
	require.Error(t, err)

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "no dataset for region mars", gatewayErr.Message)
}

func TestHTTPRecommenderMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Traceback (most recent call last): ..."))
	}))
	defer srv.Close()

	rec := NewHTTPRecommender(srv.URL, 5*time.Second)
	_, err := rec.Recommend(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestHTTPRecommenderEmptyMeals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"meals": []any{}})
	}))
	defer srv.Close()

	rec := NewHTTPRecommender(srv.URL, 5*time.Second)
	_, err := rec.Recommend(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestHTTPRecommenderNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	rec := NewHTTPRecommender(srv.URL, 5*time.Second)
	_, err := rec.Recommend(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestHTTPRecommenderTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	rec := NewHTTPRecommender(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := rec.Recommend(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestHTTPRecommenderUnreachable(t *testing.T) {
	rec := NewHTTPRecommender("http://127.0.0.1:1", time.Second)
	_, err := rec.Recommend(context.Background(), testProfile())
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
