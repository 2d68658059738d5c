package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietPlan is one user's meal schedule for a single calendar day.
// Plan dates are stored as UTC midnight; (user_id, plan_date) is unique.
type DietPlan struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_plan_date" json:"-"`
	PlanDate  time.Time `gorm:"not null;uniqueIndex:idx_user_plan_date" json:"date"`
	Meals     []Meal    `gorm:"foreignKey:PlanID" json:"meals"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Meal is one scheduled eating occasion within a plan. Meals keep their
// creation order via SortIndex and are never reordered or removed.
type Meal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	PlanID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	SortIndex int       `gorm:"not null" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Time      string    `gorm:"size:20" json:"time"`
	Calories  float64   `json:"calories"`
	Macros    Macros    `gorm:"embedded" json:"macros"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Macros is a macronutrient breakdown in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// Add returns the element-wise sum of two macro breakdowns.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fats:    m.Fats + o.Fats,
	}
}

// DayUTC truncates t to its UTC calendar day. Plan dates pass through this
// helper on both the write and read paths so day-granularity lookups always
// compare equal values.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
