package service

import (
	"context"
	"io"

	"prtracker/internal/authz"
	"prtracker/internal/catalog"
	"prtracker/internal/hasher"
	"prtracker/internal/models"
	"prtracker/internal/repository"
)

// Records exposes CRUD, PR and progress queries over both record kinds.
// Every method consults the caller's scope before touching the store.
type Records interface {
	CreateWeightlift(ctx context.Context, s authz.Session, ownerID int64, in WeightliftInput) (*models.WeightliftRecord, error)
	ListWeightlifts(ctx context.Context, s authz.Session, filterUserID *int64) ([]models.WeightliftRecord, error)
	UpdateWeightlift(ctx context.Context, s authz.Session, recordID int64, p WeightliftPatch) (*models.WeightliftRecord, error)
	DeleteWeightlift(ctx context.Context, s authz.Session, recordID int64) error
	WeightliftProgress(ctx context.Context, s authz.Session, userID *int64, movement string) (*models.WeightliftProgress, error)

	CreateBenchmark(ctx context.Context, s authz.Session, ownerID int64, in BenchmarkInput) (*models.BenchmarkRecord, error)
	ListBenchmarks(ctx context.Context, s authz.Session, filterUserID *int64) ([]models.BenchmarkRecord, error)
	UpdateBenchmark(ctx context.Context, s authz.Session, recordID int64, p BenchmarkPatch) (*models.BenchmarkRecord, error)
	DeleteBenchmark(ctx context.Context, s authz.Session, recordID int64) error
	BenchmarkProgress(ctx context.Context, s authz.Session, userID *int64, benchmark string) (*models.BenchmarkProgress, error)

	CurrentPRs(ctx context.Context, s authz.Session, userID *int64) (*models.CurrentPRs, error)
}

// Users covers registration, login and account administration.
type Users interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (authz.Session, error)
	ChangePassword(ctx context.Context, s authz.Session, oldPassword, newPassword string) error
	AdminResetPassword(ctx context.Context, s authz.Session, targetUserID int64, newPassword string) error

	CreateUser(ctx context.Context, s authz.Session, in NewUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, s authz.Session, id int64, p UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, s authz.Session, id int64) error
	ListUsers(ctx context.Context, s authz.Session) ([]models.User, error)
	GetUser(ctx context.Context, s authz.Session, id int64) (*models.User, error)
	FindUser(ctx context.Context, s authz.Session, username string) (*models.User, error)

	EnsureDefaultAdmin(ctx context.Context) (bool, error)
}

// Tokens converts sessions to bearer tokens and back.
type Tokens interface {
	IssueToken(s authz.Session) (string, error)
	ParseToken(token string) (authz.Session, error)
}

// Importer runs the one-shot legacy JSON import.
type Importer interface {
	ImportLegacy(ctx context.Context, s authz.Session, kind ImportKind, path string, targetUserID int64) (*ImportReport, error)
	ImportReader(ctx context.Context, s authz.Session, kind ImportKind, r io.Reader, targetUserID int64) (*ImportReport, error)
}

type Service struct {
	Records
	Users
	Tokens
	Importer
	Catalog *catalog.Catalog
}

// Deps bundles the collaborators NewService wires together.
type Deps struct {
	Repos     *repository.Repository
	Catalog   *catalog.Catalog
	Hasher    hasher.PasswordHasher
	Token     TokenConfig
	Bootstrap BootstrapAccount
}

func NewService(d Deps) *Service {
	cat := d.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	records := NewRecordService(d.Repos.Users, d.Repos.Weightlifts, d.Repos.Benchmarks, cat)
	return &Service{
		Records:  records,
		Users:    NewUserService(d.Repos.Users, d.Hasher, d.Bootstrap),
		Tokens:   NewTokenService(d.Token),
		Importer: NewImportService(records, d.Repos.Users, cat),
		Catalog:  cat,
	}
}
