package service

import (
	"context"
	"errors"
	"time"

	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/repository"
	"github.com/weighttrack/weighttrack-go/internal/stats"
)

var (
	ErrWeightRequired = errors.New("weight must be greater than zero")
	ErrInvalidDate    = errors.New("date must be a valid date in YYYY-MM-DD format")
	ErrEntryNotFound  = errors.New("weight entry not found")
)

// WeightStore is the persistence boundary for weight entries.
type WeightStore interface {
	Create(ctx context.Context, entry *model.WeightEntry) error
	GetByID(ctx context.Context, userID, entryID string) (*model.WeightEntry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.WeightEntry, error)
	ListByUserForRange(ctx context.Context, userID, start, end string) ([]model.WeightEntry, error)
	Update(ctx context.Context, entry *model.WeightEntry) error
	Delete(ctx context.Context, userID, entryID string) error
}

// WeightService handles weight entry business logic and derived statistics.
type WeightService struct {
	weights WeightStore
	goals   GoalStore
}

// NewWeightService creates a new WeightService.
func NewWeightService(weights WeightStore, goals GoalStore) *WeightService {
	return &WeightService{weights: weights, goals: goals}
}

// Create validates and stores a new weight entry. The date defaults to
// today when omitted. Multiple entries on one date are allowed.
func (s *WeightService) Create(ctx context.Context, userID string, req model.CreateWeightEntryRequest) (*model.WeightEntry, error) {
	if req.Weight <= 0 {
		return nil, ErrWeightRequired
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	entry := &model.WeightEntry{
		UserID: userID,
		Weight: req.Weight,
		Date:   date,
		Memo:   req.Memo,
	}

	if err := s.weights.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns the user's entries newest first. When year and month are both
// set, only that month's entries are returned; otherwise limit caps the
// result (0 means no cap).
func (s *WeightService) List(ctx context.Context, userID string, limit, year, month int) ([]model.WeightEntry, error) {
	if year > 0 && month > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return s.weights.ListByUserForRange(ctx, userID, start.Format(dateLayout), end.Format(dateLayout))
	}
	return s.weights.ListByUser(ctx, userID, limit)
}

// Update applies a partial update to an entry's weight and memo.
func (s *WeightService) Update(ctx context.Context, userID, entryID string, req model.UpdateWeightEntryRequest) (*model.WeightEntry, error) {
	entry, err := s.weights.GetByID(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if req.Weight != nil {
		if *req.Weight <= 0 {
			return nil, ErrWeightRequired
		}
		entry.Weight = *req.Weight
	}
	if req.Memo != nil {
		entry.Memo = *req.Memo
	}

	if err := s.weights.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// Delete removes a weight entry.
func (s *WeightService) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.weights.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// Stats computes derived statistics for the user's latest measurement:
// daily percent change, 7-day moving average and its change, and distance
// to the active goal. Same-date entries are collapsed by averaging first.
func (s *WeightService) Stats(ctx context.Context, userID string) (*model.WeightStats, error) {
	entries, err := s.weights.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	result := &model.WeightStats{
		DailyChangeDisplay:     stats.FormatPercent(0),
		MovingAvgChangeDisplay: stats.FormatPercent(0),
	}

	points := stats.CollapseSameDate(entries)
	if len(points) == 0 {
		return result, nil
	}

	weights := make([]float64, len(points))
	for i, p := range points {
		weights[i] = p.Weight
	}

	last := len(weights) - 1
	result.MovingAvg = stats.MovingAverage(weights, last, stats.DefaultWindow)
	if last > 0 {
		result.DailyChangePercent = stats.ChangePercent(weights[last], weights[last-1])
		prevAvg := stats.MovingAverage(weights, last-1, stats.DefaultWindow)
		result.MovingAvgChangePercent = stats.ChangePercent(result.MovingAvg, prevAvg)
	}

	result.DailyChangeDisplay = stats.FormatPercent(result.DailyChangePercent)
	result.MovingAvgChangeDisplay = stats.FormatPercent(result.MovingAvgChangePercent)

	goal, err := s.goals.GetActive(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrGoalNotFound) {
			return nil, err
		}
	} else {
		remaining, reached := stats.RemainingToGoal(weights[last], goal.TargetWeight)
		result.RemainingToGoal = &remaining
		result.GoalReached = reached
	}

	return result, nil
}

// MonthSummary aggregates one calendar month into week buckets and an
// overall mean. Weeks are day-of-month buckets of seven days.
type MonthSummary struct {
	Weeks   []stats.WeekBucket `json:"weeks"`
	Average float64            `json:"average"`
	Points  []stats.DailyPoint `json:"points"`
}

// MonthlySummary computes weekly and monthly averages over the given
// month's entries, collapsing same-date entries first.
func (s *WeightService) MonthlySummary(ctx context.Context, userID string, year, month int) (*MonthSummary, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}

	entries, err := s.List(ctx, userID, 0, year, month)
	if err != nil {
		return nil, err
	}

	points := stats.CollapseSameDate(entries)
	return &MonthSummary{
		Weeks:   stats.WeeklyAverages(points),
		Average: stats.MonthlyAverage(points),
		Points:  points,
	}, nil
}
