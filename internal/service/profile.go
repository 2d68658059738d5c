package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileService owns the user's health/dietary profile.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get retrieves the profile for a user. A user who has not filled in a
// profile yet gets the defaults rather than an error.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserProfile{
			UserID:            userID,
			DietaryPreference: models.DietVegetarian,
			ActivityLevel:     "moderate",
			Allergies:         models.JSONBStringArray{},
			HealthConditions:  models.JSONBStringArray{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Replace overwrites the whole profile with the supplied value. Fields the
// caller omits become zero values; nothing is merged from the prior state.
func (s *ProfileService) Replace(ctx context.Context, userID uuid.UUID, profile models.UserProfile) (*models.UserProfile, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	profile.UserID = userID
	if profile.Allergies == nil {
		profile.Allergies = models.JSONBStringArray{}
	}
	if profile.HealthConditions == nil {
		profile.HealthConditions = models.JSONBStringArray{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			// Save writes every column, which is exactly the replace contract.
			return tx.Save(&profile).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&profile).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (s *ProfileService) requireUser(ctx context.Context, userID uuid.UUID) error {
	var user models.User
	if err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
