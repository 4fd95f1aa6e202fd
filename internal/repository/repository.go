package repository

import (
	"context"

	"prtracker/internal/models"

	"github.com/jmoiron/sqlx"
)

type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	UpdatePassword(ctx context.Context, id int64, digest string) error
	UpdateProfile(ctx context.Context, id int64, role models.Role, fullName string) error
	// Delete removes the user and every record they own in one transaction.
	Delete(ctx context.Context, id int64) error
	// EnsureAdmin inserts u only when the users table is empty.
	EnsureAdmin(ctx context.Context, u models.User) (bool, error)
}

type Weightlifts interface {
	Create(ctx context.Context, r models.WeightliftRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.WeightliftRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WeightliftRecord, error)
	ListAll(ctx context.Context) ([]models.WeightliftRecord, error)
	Update(ctx context.Context, r models.WeightliftRecord) error
	Delete(ctx context.Context, id int64) error
}

type Benchmarks interface {
	Create(ctx context.Context, r models.BenchmarkRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.BenchmarkRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]models.BenchmarkRecord, error)
	ListAll(ctx context.Context) ([]models.BenchmarkRecord, error)
	Update(ctx context.Context, r models.BenchmarkRecord) error
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	Users       Users
	Weightlifts Weightlifts
	Benchmarks  Benchmarks
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:       NewUserRepository(db),
		Weightlifts: NewWeightliftRepository(db),
		Benchmarks:  NewBenchmarkRepository(db),
	}
}
