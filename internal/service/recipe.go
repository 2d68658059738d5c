package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService reads the recipe catalog.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns recipes, optionally filtered by diet type. An empty filter or
// "all" returns the whole catalog.
func (s *RecipeService) List(ctx context.Context, dietType string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx)
	if dietType != "" && dietType != "all" {
		query = query.Where("diet_type = ?", dietType)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get retrieves one recipe by id.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// AttachImage verifies the recipe exists, runs the upload and stores the
// resulting URL on the recipe.
func (s *RecipeService) AttachImage(ctx context.Context, id uuid.UUID, upload func() (string, error)) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := upload()
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, err
	}

	recipe.ImageURL = url
	return recipe, nil
}

// Recommended returns recipes matching the diet type that share at least one
// ingredient with the given list. With no ingredients it degrades to List.
func (s *RecipeService) Recommended(ctx context.Context, dietType string, ingredients []string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx)
	if dietType != "" && dietType != "all" {
		query = query.Where("diet_type = ?", dietType)
	}

	if len(ingredients) > 0 {
		// Ingredients live in a JSONB array; overlap is a substring match on
		// its text form, per ingredient, OR-ed together.
		column := "LOWER(ingredients)"
		if s.db.Dialector.Name() == "postgres" {
			column = "LOWER(ingredients::text)"
		}

		var overlap *gorm.DB
		for _, ing := range ingredients {
			ing = strings.TrimSpace(ing)
			if ing == "" {
				continue
			}
			like := "%" + strings.ToLower(ing) + "%"
			cond := s.db.Where(column+" LIKE ?", like)
			if overlap == nil {
				overlap = cond
			} else {
				overlap = overlap.Or(cond)
			}
		}
		if overlap != nil {
			query = query.Where(overlap)
		}
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
