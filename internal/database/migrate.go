package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// RunMigrations brings the schema up to date for every model.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.DietPlan{},
		&models.Meal{},
		&models.Recipe{},
	)
}

// SeedRecipes populates the recipe catalog with a starter set. It is a no-op
// when the catalog already has entries, so it is safe to run on every deploy.
func SeedRecipes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count recipes: %w", err)
	}
	if count > 0 {
		log.Printf("Skipping recipe seed (%d recipes already present)", count)
		return nil
	}

	recipes := []models.Recipe{
		{
			Name:        "Vegetable Stuffed Paratha with Curd",
			Calories:    350,
			DietType:    models.DietVegetarian,
			Ingredients: models.JSONBStringArray{"whole wheat flour", "mixed vegetables", "spices", "curd"},
			Macros:      models.Macros{Protein: 10, Carbs: 50, Fats: 12},
			Instructions: models.JSONBStringArray{
				"Prepare the dough with whole wheat flour",
				"Make stuffing with mashed vegetables and spices",
				"Roll out the paratha with stuffing",
				"Cook on griddle with oil",
				"Serve hot with curd",
			},
		},
		{
			Name:        "Rajma (Kidney Bean Curry) with Brown Rice",
			Calories:    550,
			DietType:    models.DietVegetarian,
			Ingredients: models.JSONBStringArray{"kidney beans", "brown rice", "onions", "tomatoes", "spices"},
			Macros:      models.Macros{Protein: 20, Carbs: 75, Fats: 15},
			Instructions: models.JSONBStringArray{
				"Soak kidney beans overnight",
				"Pressure cook beans until soft",
				"Prepare onion-tomato gravy",
				"Add spices and cook",
				"Serve hot with brown rice",
			},
		},
		{
			Name:        "Grilled Chicken with Quinoa Salad",
			Calories:    480,
			DietType:    models.DietNonVegetarian,
			Ingredients: models.JSONBStringArray{"chicken breast", "quinoa", "cucumber", "lemon", "olive oil"},
			Macros:      models.Macros{Protein: 42, Carbs: 38, Fats: 16},
			Instructions: models.JSONBStringArray{
				"Marinate chicken with lemon and spices",
				"Grill chicken until cooked through",
				"Cook quinoa and let it cool",
				"Toss quinoa with chopped cucumber and olive oil",
				"Slice chicken over the salad and serve",
			},
		},
		{
			Name:        "Egg Bhurji with Multigrain Toast",
			Calories:    320,
			DietType:    models.DietNonVegetarian,
			Ingredients: models.JSONBStringArray{"eggs", "onions", "tomatoes", "multigrain bread", "spices"},
			Macros:      models.Macros{Protein: 18, Carbs: 28, Fats: 14},
			Instructions: models.JSONBStringArray{
				"Saute onions and tomatoes with spices",
				"Add beaten eggs and scramble on low heat",
				"Toast the multigrain bread",
				"Serve bhurji hot with toast",
			},
		},
	}

	if err := db.Create(&recipes).Error; err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}

	log.Printf("Seeded %d recipes", len(recipes))
	return nil
}
