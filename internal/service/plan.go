package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platewise/backend/internal/models"
)

var (
	ErrPlanNotFound = errors.New("diet plan not found")
	ErrMealNotFound = errors.New("meal not found")
	ErrPlanExists   = errors.New("diet plan already exists for this date")
)

// PlanService owns the plan-per-day lifecycle: generation, lookup, meal
// tracking and nutrient aggregation.
type PlanService struct {
	db          *gorm.DB
	recommender Recommender
}

func NewPlanService(db *gorm.DB, recommender Recommender) *PlanService {
	return &PlanService{
		db:          db,
		recommender: recommender,
	}
}

// GetPlan returns the user's plan for the given calendar day, meals in their
// original order.
func (s *PlanService) GetPlan(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DietPlan, error) {
	day := models.DayUTC(date)

	var plan models.DietPlan
	err := s.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC")
		}).
		Where("user_id = ? AND plan_date = ?", userID, day).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &plan, nil
}

// CreatePlan stores a plan for the given day. The (user, day) pair is unique;
// a second create for the same day fails with ErrPlanExists instead of
// appending a duplicate.
func (s *PlanService) CreatePlan(ctx context.Context, userID uuid.UUID, date time.Time, candidates []MealCandidate) (*models.DietPlan, error) {
	day := models.DayUTC(date)

	plan := models.DietPlan{
		ID:       uuid.New(),
		UserID:   userID,
		PlanDate: day,
	}

	meals := make([]models.Meal, len(candidates))
	for i, c := range candidates {
		meals[i] = models.Meal{
			ID:        uuid.New(),
			PlanID:    plan.ID,
			SortIndex: i,
			Name:      c.Name,
			Time:      c.Time,
			Calories:  c.Calories,
			Macros:    c.Macros,
			Completed: c.Completed,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The unique index on (user_id, plan_date) is the arbiter; losing a
		// concurrent create surfaces as zero rows inserted.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&plan)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlanExists
		}
		if len(meals) == 0 {
			return nil
		}
		return tx.Create(&meals).Error
	})
	if err != nil {
		return nil, err
	}

	plan.Meals = meals
	return &plan, nil
}

// GenerateDailyPlan returns the stored plan for the day, generating one via
// the recommendation gateway when none exists yet. Two racing calls for the
// same missing day converge on a single stored plan.
func (s *PlanService) GenerateDailyPlan(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DietPlan, error) {
	plan, err := s.GetPlan(ctx, userID, date)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, ErrPlanNotFound) {
		return nil, err
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	candidates, err := s.recommender.Recommend(ctx, &profile)
	if err != nil {
		return nil, err
	}

	created, err := s.CreatePlan(ctx, userID, date, candidates)
	if errors.Is(err, ErrPlanExists) {
		// A concurrent request won the insert; serve its plan.
		log.Printf("[PlanService] plan for %s already created concurrently, returning stored plan", models.DayUTC(date).Format("2006-01-02"))
		return s.GetPlan(ctx, userID, date)
	}
	if err != nil {
		return nil, err
	}

	return created, nil
}

// SetMealCompleted flips one meal's completion flag within the day's plan and
// returns the refreshed plan. The write touches only that meal's row, so
// trackers of sibling meals never lose updates to each other. Setting the
// same value twice is a no-op.
func (s *PlanService) SetMealCompleted(ctx context.Context, userID uuid.UUID, date time.Time, mealID uuid.UUID, completed bool) (*models.DietPlan, error) {
	plan, err := s.GetPlan(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range plan.Meals {
		if plan.Meals[i].ID == mealID {
			plan.Meals[i].Completed = completed
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMealNotFound
	}

	err = s.db.WithContext(ctx).Model(&models.Meal{}).
		Where("id = ? AND plan_id = ?", mealID, plan.ID).
		Update("completed", completed).Error
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// NutrientTotals sums the macros of the day's completed meals. A plan with no
// completed meals yields zero totals, not an error.
func (s *PlanService) NutrientTotals(ctx context.Context, userID uuid.UUID, date time.Time) (models.Macros, error) {
	plan, err := s.GetPlan(ctx, userID, date)
	if err != nil {
		return models.Macros{}, err
	}

	var totals models.Macros
	for _, meal := range plan.Meals {
		if meal.Completed {
			totals = totals.Add(meal.Macros)
		}
	}

	return totals, nil
}
