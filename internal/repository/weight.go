package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/weighttrack/weighttrack-go/internal/model"
)

var ErrEntryNotFound = errors.New("weight entry not found")

const dateLayout = "2006-01-02"

// WeightRepository handles weight entry persistence operations.
type WeightRepository struct {
	db *sql.DB
}

// NewWeightRepository creates a new WeightRepository.
func NewWeightRepository(db *sql.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// Create inserts a new weight entry and sets the generated ID on the entry.
func (r *WeightRepository) Create(ctx context.Context, entry *model.WeightEntry) error {
	entry.ID = uuid.NewString()

	query := `INSERT INTO weight_entries (id, user_id, weight, date, memo) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Weight, entry.Date, entry.Memo)
	return err
}

// GetByID retrieves a weight entry owned by the given user.
func (r *WeightRepository) GetByID(ctx context.Context, userID, entryID string) (*model.WeightEntry, error) {
	query := `SELECT id, user_id, weight, date, memo, created_at, updated_at
		FROM weight_entries WHERE user_id = ? AND id = ?`

	entry := &model.WeightEntry{}
	var date time.Time
	err := r.db.QueryRowContext(ctx, query, userID, entryID).Scan(
		&entry.ID, &entry.UserID, &entry.Weight, &date,
		&entry.Memo, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	entry.Date = date.Format(dateLayout)

	return entry, nil
}

// ListByUser retrieves a user's weight entries, newest date first. A limit
// of 0 means no limit.
func (r *WeightRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.WeightEntry, error) {
	query := `SELECT id, user_id, weight, date, memo, created_at, updated_at
		FROM weight_entries WHERE user_id = ? ORDER BY date DESC, created_at DESC`

	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return r.queryEntries(ctx, query, args...)
}

// ListByUserForRange retrieves a user's weight entries with dates inside
// [start, end], newest date first. Dates are YYYY-MM-DD strings.
func (r *WeightRepository) ListByUserForRange(ctx context.Context, userID, start, end string) ([]model.WeightEntry, error) {
	query := `SELECT id, user_id, weight, date, memo, created_at, updated_at
		FROM weight_entries WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`

	return r.queryEntries(ctx, query, userID, start, end)
}

// Update changes an entry's weight and memo.
func (r *WeightRepository) Update(ctx context.Context, entry *model.WeightEntry) error {
	query := `UPDATE weight_entries SET weight = ?, memo = ? WHERE user_id = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, entry.Weight, entry.Memo, entry.UserID, entry.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete removes a weight entry owned by the given user.
func (r *WeightRepository) Delete(ctx context.Context, userID, entryID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM weight_entries WHERE user_id = ? AND id = ?`, userID, entryID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *WeightRepository) queryEntries(ctx context.Context, query string, args ...any) ([]model.WeightEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.WeightEntry
	for rows.Next() {
		var e model.WeightEntry
		var date time.Time
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Weight, &date,
			&e.Memo, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Date = date.Format(dateLayout)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
