package model

import "time"

// Goal represents a weight goal. A user has at most one active goal;
// creating a new goal deactivates earlier ones instead of deleting them.
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TargetWeight float64   `json:"target_weight"`
	Deadline     time.Time `json:"deadline"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateGoalRequest represents a goal creation request. Deadline is a
// calendar date in YYYY-MM-DD form.
type CreateGoalRequest struct {
	TargetWeight float64 `json:"target_weight"`
	Deadline     string  `json:"deadline"`
}

// UpdateGoalRequest represents a partial goal update. Nil fields are left unchanged.
type UpdateGoalRequest struct {
	TargetWeight *float64 `json:"target_weight"`
	Deadline     *string  `json:"deadline"`
}

// GoalProgress describes the pace needed to reach the active goal by its deadline.
type GoalProgress struct {
	CurrentWeight   *float64 `json:"current_weight,omitempty"`
	DaysRemaining   int      `json:"days_remaining"`
	DailyRequired   float64  `json:"daily_required"`
	WeeklyRequired  float64  `json:"weekly_required"`
	MonthlyRequired float64  `json:"monthly_required"`
}
