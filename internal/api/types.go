package api

import (
	"fmt"
	"strings"
	"time"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TrackMealRequest struct {
	Date      string `json:"date" binding:"required"`
	MealID    string `json:"mealId" binding:"required"`
	Completed bool   `json:"completed"`
}

// parseDay accepts a bare calendar date or a full timestamp and returns the
// parsed value; callers normalize it to a UTC day via models.DayUTC.
func parseDay(s string) (time.Time, error) {
	// Timestamps are tolerated for clients that send full ISO strings.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
