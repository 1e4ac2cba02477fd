package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/weighttrack/weighttrack-go/internal/model"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalRepository handles goal persistence operations.
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new active goal, deactivating any previously active goals
// for the user in the same transaction. Prior goals stay in history with
// is_active = false.
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	goal.ID = uuid.NewString()
	goal.IsActive = true

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deactivate := `UPDATE goals SET is_active = FALSE WHERE user_id = ? AND is_active = TRUE`
	if _, err := tx.ExecContext(ctx, deactivate, goal.UserID); err != nil {
		return fmt.Errorf("deactivating prior goals: %w", err)
	}

	insert := `INSERT INTO goals (id, user_id, target_weight, deadline, is_active) VALUES (?, ?, ?, ?, TRUE)`
	if _, err := tx.ExecContext(ctx, insert, goal.ID, goal.UserID, goal.TargetWeight, goal.Deadline); err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}

	return tx.Commit()
}

// GetActive retrieves the user's single active goal, if any.
func (r *GoalRepository) GetActive(ctx context.Context, userID string) (*model.Goal, error) {
	query := `SELECT id, user_id, target_weight, deadline, is_active, created_at, updated_at
		FROM goals WHERE user_id = ? AND is_active = TRUE`

	goal := &model.Goal{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&goal.ID, &goal.UserID, &goal.TargetWeight, &goal.Deadline,
		&goal.IsActive, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

// GetByID retrieves a goal owned by the given user.
func (r *GoalRepository) GetByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	query := `SELECT id, user_id, target_weight, deadline, is_active, created_at, updated_at
		FROM goals WHERE user_id = ? AND id = ?`

	goal := &model.Goal{}
	err := r.db.QueryRowContext(ctx, query, userID, goalID).Scan(
		&goal.ID, &goal.UserID, &goal.TargetWeight, &goal.Deadline,
		&goal.IsActive, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

// ListByUser retrieves the user's full goal history, newest first.
func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]model.Goal, error) {
	query := `SELECT id, user_id, target_weight, deadline, is_active, created_at, updated_at
		FROM goals WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.TargetWeight, &g.Deadline,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// Update changes a goal's target weight and deadline.
func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals SET target_weight = ?, deadline = ? WHERE user_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, goal.TargetWeight, goal.Deadline, goal.UserID, goal.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// Delete removes a goal owned by the given user.
func (r *GoalRepository) Delete(ctx context.Context, userID, goalID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, goalID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrGoalNotFound
	}

	return nil
}
