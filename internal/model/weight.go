package model

import "time"

// WeightEntry represents a single weight measurement. Multiple entries on the
// same calendar date are allowed; aggregation averages them at read time.
type WeightEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Weight    float64   `json:"weight"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateWeightEntryRequest represents a weight entry creation request.
// Date defaults to today when omitted.
type CreateWeightEntryRequest struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Memo   string  `json:"memo"`
}

// UpdateWeightEntryRequest represents a partial weight entry update.
type UpdateWeightEntryRequest struct {
	Weight *float64 `json:"weight"`
	Memo   *string  `json:"memo"`
}

// WeightStats holds derived statistics over a user's weight series,
// computed against the most recent entry. The display fields carry the
// signed, one-decimal rendering of the percent changes.
type WeightStats struct {
	DailyChangePercent     float64  `json:"daily_change_percent"`
	DailyChangeDisplay     string   `json:"daily_change_display"`
	MovingAvg              float64  `json:"moving_avg"`
	MovingAvgChangePercent float64  `json:"moving_avg_change_percent"`
	MovingAvgChangeDisplay string   `json:"moving_avg_change_display"`
	RemainingToGoal        *float64 `json:"remaining_to_goal,omitempty"`
	GoalReached            bool     `json:"goal_reached"`
}
