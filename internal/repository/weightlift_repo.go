package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prtracker/internal/apperr"
	"prtracker/internal/models"

	"github.com/jmoiron/sqlx"
)

type WeightliftRepository struct {
	db *sqlx.DB
}

func NewWeightliftRepository(db *sqlx.DB) *WeightliftRepository {
	return &WeightliftRepository{db: db}
}

var _ Weightlifts = (*WeightliftRepository)(nil)

const (
	weightliftColumns = `id, user_id, movement, value, unit, date, note`

	insertWeightliftSQL = `
		INSERT INTO weightlift_records (user_id, movement, value, unit, date, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectWeightliftByIDSQL    = `SELECT ` + weightliftColumns + ` FROM weightlift_records WHERE id = ?`
	selectWeightliftsByUserSQL = `SELECT ` + weightliftColumns + ` FROM weightlift_records WHERE user_id = ? ORDER BY date DESC, id DESC`
	selectAllWeightliftsSQL    = `SELECT ` + weightliftColumns + ` FROM weightlift_records ORDER BY date DESC, id DESC`
	updateWeightliftSQL        = `UPDATE weightlift_records SET movement = ?, value = ?, unit = ?, date = ?, note = ? WHERE id = ?`
	deleteWeightliftSQL        = `DELETE FROM weightlift_records WHERE id = ?`
)

// Create inserts r and returns the assigned ID. r.ID is ignored.
func (r *WeightliftRepository) Create(ctx context.Context, rec models.WeightliftRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertWeightliftSQL,
		rec.UserID, rec.Movement, rec.Value, rec.Unit, rec.Date, rec.Note)
	if err != nil {
		return 0, apperr.Storage(fmt.Sprintf("insert weightlift for user %d", rec.UserID), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Storage("get last insert id for weightlift", err)
	}
	return id, nil
}

func (r *WeightliftRepository) GetByID(ctx context.Context, id int64) (*models.WeightliftRecord, error) {
	var rec models.WeightliftRecord
	if err := r.db.GetContext(ctx, &rec, selectWeightliftByIDSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("record not found")
		}
		return nil, apperr.Storage(fmt.Sprintf("select weightlift %d", id), err)
	}
	return &rec, nil
}

// ListByUser returns the user's records, newest first.
func (r *WeightliftRepository) ListByUser(ctx context.Context, userID int64) ([]models.WeightliftRecord, error) {
	out := make([]models.WeightliftRecord, 0, 32)
	if err := r.db.SelectContext(ctx, &out, selectWeightliftsByUserSQL, userID); err != nil {
		return nil, apperr.Storage(fmt.Sprintf("select weightlifts of user %d", userID), err)
	}
	return out, nil
}

// ListAll returns every user's records, newest first.
func (r *WeightliftRepository) ListAll(ctx context.Context) ([]models.WeightliftRecord, error) {
	out := make([]models.WeightliftRecord, 0, 64)
	if err := r.db.SelectContext(ctx, &out, selectAllWeightliftsSQL); err != nil {
		return nil, apperr.Storage("select weightlifts", err)
	}
	return out, nil
}

// Update overwrites the mutable columns. The owner never changes.
func (r *WeightliftRepository) Update(ctx context.Context, rec models.WeightliftRecord) error {
	res, err := r.db.ExecContext(ctx, updateWeightliftSQL,
		rec.Movement, rec.Value, rec.Unit, rec.Date, rec.Note, rec.ID)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("update weightlift %d", rec.ID), err)
	}
	return requireOneRow(res, "record", rec.ID)
}

func (r *WeightliftRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteWeightliftSQL, id)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("delete weightlift %d", id), err)
	}
	return requireOneRow(res, "record", id)
}
