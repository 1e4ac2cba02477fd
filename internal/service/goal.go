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
	ErrTargetWeightRequired = errors.New("target weight must be greater than zero")
	ErrInvalidDeadline      = errors.New("deadline must be a valid date in YYYY-MM-DD format")
	ErrGoalNotFound         = errors.New("goal not found")
)

const dateLayout = "2006-01-02"

// GoalStore is the persistence boundary for goals.
type GoalStore interface {
	Create(ctx context.Context, goal *model.Goal) error
	GetActive(ctx context.Context, userID string) (*model.Goal, error)
	GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}

// GoalService handles goal business logic.
type GoalService struct {
	goals   GoalStore
	weights WeightStore
}

// NewGoalService creates a new GoalService.
func NewGoalService(goals GoalStore, weights WeightStore) *GoalService {
	return &GoalService{goals: goals, weights: weights}
}

// Create validates and stores a new active goal. Any previously active goal
// is superseded, not deleted.
func (s *GoalService) Create(ctx context.Context, userID string, req model.CreateGoalRequest) (*model.Goal, error) {
	if req.TargetWeight <= 0 {
		return nil, ErrTargetWeightRequired
	}

	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		return nil, ErrInvalidDeadline
	}

	goal := &model.Goal{
		UserID:       userID,
		TargetWeight: req.TargetWeight,
		Deadline:     deadline,
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// Active returns the user's active goal, or nil when none exists. Having no
// active goal is a normal state, not an error.
func (s *GoalService) Active(ctx context.Context, userID string) (*model.Goal, error) {
	goal, err := s.goals.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return goal, nil
}

// History returns the user's goals, newest first, including superseded ones.
func (s *GoalService) History(ctx context.Context, userID string) ([]model.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// Update applies a partial update to a goal's target weight and deadline.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, req model.UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.goals.GetByID(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	if req.TargetWeight != nil {
		if *req.TargetWeight <= 0 {
			return nil, ErrTargetWeightRequired
		}
		goal.TargetWeight = *req.TargetWeight
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(dateLayout, *req.Deadline)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		goal.Deadline = deadline
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

// Delete removes a goal. Deleting the only active goal leaves the user with
// no active goal, which is a valid state.
func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	if err := s.goals.Delete(ctx, userID, goalID); err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}

// Progress computes the pace needed to hit the active goal by its deadline,
// based on the most recent collapsed daily weight. Returns ErrGoalNotFound
// when the user has no active goal.
func (s *GoalService) Progress(ctx context.Context, userID string, now time.Time) (*model.GoalProgress, error) {
	goal, err := s.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, ErrGoalNotFound
	}

	progress := &model.GoalProgress{
		DaysRemaining: stats.DaysRemaining(goal.Deadline, now),
	}

	entries, err := s.weights.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	points := stats.CollapseSameDate(entries)
	if len(points) > 0 {
		current := points[len(points)-1].Weight
		progress.CurrentWeight = &current
		progress.DailyRequired, progress.WeeklyRequired, progress.MonthlyRequired =
			stats.RequiredPace(current, goal.TargetWeight, progress.DaysRemaining)
	}

	return progress, nil
}
