package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_digest, role, full_name, created_at) VALUES (?, ?, ?, ?, ?)`

	userColumns             = `id, username, password_digest, role, full_name, created_at`
	selectUserByIDSQL       = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectUsersSQL          = `SELECT ` + userColumns + ` FROM users ORDER BY username`
	countUsersSQL           = `SELECT COUNT(*) FROM users`

	updateUserPasswordSQL = `UPDATE users SET password_digest = ? WHERE id = ?`
	updateUserProfileSQL  = `UPDATE users SET role = ?, full_name = ? WHERE id = ?`

	deleteUserWeightliftsSQL = `DELETE FROM weightlift_records WHERE user_id = ?`
	deleteUserBenchmarksSQL  = `DELETE FROM benchmark_records WHERE user_id = ?`
	deleteUserSQL            = `DELETE FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID. A taken username is a Conflict.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	return insertUser(ctx, r.db, u, r.createdAt(u))
}

func (r *UserRepository) createdAt(u models.User) time.Time {
	if u.CreatedAt.IsZero() {
		return r.now()
	}
	return u.CreatedAt.UTC()
}

func insertUser(ctx context.Context, ex sqlx.ExecerContext, u models.User, createdAt time.Time) (int64, error) {
	res, err := ex.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordDigest, string(u.Role), u.FullName, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Conflict("username %q is already taken", u.Username)
		}
		return 0, apperr.Storage(fmt.Sprintf("insert user %q", u.Username), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Storage(fmt.Sprintf("get last insert id for user %q", u.Username), err)
	}
	return lastID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, selectUserByIDSQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage(fmt.Sprintf("select user %d", id), err)
	}
	return &u, nil
}

// GetByUsername fetches a user by username. Missing users are NotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, selectUserByUsernameSQL, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Storage(fmt.Sprintf("select user %q", username), err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, 16)
	if err := r.db.SelectContext(ctx, &users, selectUsersSQL); err != nil {
		return nil, apperr.Storage("select users", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, countUsersSQL); err != nil {
		return 0, apperr.Storage("count users", err)
	}
	return n, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, digest string) error {
	res, err := r.db.ExecContext(ctx, updateUserPasswordSQL, digest, id)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("update password of user %d", id), err)
	}
	return requireOneRow(res, "user", id)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, role models.Role, fullName string) error {
	res, err := r.db.ExecContext(ctx, updateUserProfileSQL, string(role), fullName, id)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("update profile of user %d", id), err)
	}
	return requireOneRow(res, "user", id)
}

// Delete removes the user's records and then the user. The foreign keys cascade
// as well; the explicit deletes keep the operation atomic when they are off.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, stmt := range []string{deleteUserWeightliftsSQL, deleteUserBenchmarksSQL} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return apperr.Storage(fmt.Sprintf("delete records of user %d", id), err)
			}
		}
		res, err := tx.ExecContext(ctx, deleteUserSQL, id)
		if err != nil {
			return apperr.Storage(fmt.Sprintf("delete user %d", id), err)
		}
		return requireOneRow(res, "user", id)
	})
}

// EnsureAdmin checks emptiness and inserts in the same transaction, so two
// processes starting together cannot both create the bootstrap account.
func (r *UserRepository) EnsureAdmin(ctx context.Context, u models.User) (bool, error) {
	created := false
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n, countUsersSQL); err != nil {
			return apperr.Storage("count users", err)
		}
		if n > 0 {
			return nil
		}
		u.Role = models.RoleAdmin
		if _, err := insertUser(ctx, tx, u, r.createdAt(u)); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
