package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
)

// MockRecommender is a testify mock of the recommendation gateway.
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, profile *models.UserProfile) ([]service.MealCandidate, error) {
	args := m.Called(ctx, profile)
	if meals, ok := args.Get(0).([]service.MealCandidate); ok {
		return meals, args.Error(1)
	}
	return nil, args.Error(1)
}
