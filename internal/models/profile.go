package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dietary preference values accepted by the recommender.
const (
	DietVegetarian    = "vegetarian"
	DietNonVegetarian = "non-vegetarian"
)

// SleepSchedule holds wake/sleep times as local clock strings, e.g. "07:00".
type SleepSchedule struct {
	WakeUpTime string `gorm:"size:20" json:"wakeUpTime"`
	SleepTime  string `gorm:"size:20" json:"sleepTime"`
}

// UserProfile is the health and dietary profile driving plan generation.
// It is replaced wholesale on update, never patched.
type UserProfile struct {
	ID                uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"-"`
	UserID            uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"-"`
	Age               int              `json:"age"`
	Weight            float64          `json:"weight"`
	Height            float64          `json:"height"`
	Gender            string           `gorm:"size:20" json:"gender"`
	DietaryPreference string           `gorm:"size:30;default:'vegetarian'" json:"dietaryPreference"`
	Allergies         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	HealthConditions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"healthConditions"`
	ActivityLevel     string           `gorm:"size:20;default:'moderate'" json:"activityLevel"`
	SleepSchedule     SleepSchedule    `gorm:"embedded;embeddedPrefix:sleep_" json:"sleepSchedule"`
	Region            string           `gorm:"size:50" json:"region"`
	CreatedAt         time.Time        `json:"-"`
	UpdatedAt         time.Time        `json:"-"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
