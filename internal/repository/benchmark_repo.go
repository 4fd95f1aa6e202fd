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

type BenchmarkRepository struct {
	db *sqlx.DB
}

func NewBenchmarkRepository(db *sqlx.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

var _ Benchmarks = (*BenchmarkRepository)(nil)

const (
	benchmarkColumns = `id, user_id, benchmark, value, rounds, reps, date, note`

	insertBenchmarkSQL = `
		INSERT INTO benchmark_records (user_id, benchmark, value, rounds, reps, date, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	selectBenchmarkByIDSQL    = `SELECT ` + benchmarkColumns + ` FROM benchmark_records WHERE id = ?`
	selectBenchmarksByUserSQL = `SELECT ` + benchmarkColumns + ` FROM benchmark_records WHERE user_id = ? ORDER BY date DESC, id DESC`
	selectAllBenchmarksSQL    = `SELECT ` + benchmarkColumns + ` FROM benchmark_records ORDER BY date DESC, id DESC`
	updateBenchmarkSQL        = `UPDATE benchmark_records SET benchmark = ?, value = ?, rounds = ?, reps = ?, date = ?, note = ? WHERE id = ?`
	deleteBenchmarkSQL        = `DELETE FROM benchmark_records WHERE id = ?`
)

// Create inserts r and returns the assigned ID. r.ID is ignored.
func (r *BenchmarkRepository) Create(ctx context.Context, rec models.BenchmarkRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBenchmarkSQL,
		rec.UserID, rec.Benchmark, rec.Value, rec.Rounds, rec.Reps, rec.Date, rec.Note)
	if err != nil {
		return 0, apperr.Storage(fmt.Sprintf("insert benchmark for user %d", rec.UserID), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Storage("get last insert id for benchmark", err)
	}
	return id, nil
}

func (r *BenchmarkRepository) GetByID(ctx context.Context, id int64) (*models.BenchmarkRecord, error) {
	var rec models.BenchmarkRecord
	if err := r.db.GetContext(ctx, &rec, selectBenchmarkByIDSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("record not found")
		}
		return nil, apperr.Storage(fmt.Sprintf("select benchmark %d", id), err)
	}
	return &rec, nil
}

// ListByUser returns the user's records, newest first.
func (r *BenchmarkRepository) ListByUser(ctx context.Context, userID int64) ([]models.BenchmarkRecord, error) {
	out := make([]models.BenchmarkRecord, 0, 32)
	if err := r.db.SelectContext(ctx, &out, selectBenchmarksByUserSQL, userID); err != nil {
		return nil, apperr.Storage(fmt.Sprintf("select benchmarks of user %d", userID), err)
	}
	return out, nil
}

// ListAll returns every user's records, newest first.
func (r *BenchmarkRepository) ListAll(ctx context.Context) ([]models.BenchmarkRecord, error) {
	out := make([]models.BenchmarkRecord, 0, 64)
	if err := r.db.SelectContext(ctx, &out, selectAllBenchmarksSQL); err != nil {
		return nil, apperr.Storage("select benchmarks", err)
	}
	return out, nil
}

// Update overwrites the mutable columns. The owner never changes.
func (r *BenchmarkRepository) Update(ctx context.Context, rec models.BenchmarkRecord) error {
	res, err := r.db.ExecContext(ctx, updateBenchmarkSQL,
		rec.Benchmark, rec.Value, rec.Rounds, rec.Reps, rec.Date, rec.Note, rec.ID)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("update benchmark %d", rec.ID), err)
	}
	return requireOneRow(res, "record", rec.ID)
}

func (r *BenchmarkRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteBenchmarkSQL, id)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("delete benchmark %d", id), err)
	}
	return requireOneRow(res, "record", id)
}
