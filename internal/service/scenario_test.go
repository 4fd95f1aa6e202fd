package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/hasher"
	"prtracker/internal/models"
	"prtracker/internal/repository"
	"prtracker/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newSQLiteService wires the full stack over a temp-file database.
func newSQLiteService(t *testing.T, path string) *Service {
	t.Helper()
	conn, err := db.InitDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewService(Deps{
		Repos:  repository.NewRepository(conn),
		Hasher: hasher.NewBcrypt(bcrypt.MinCost),
		Token:  TokenConfig{SigningKey: "scenario", TTL: time.Minute},
	})
}

func TestScenario_BootstrapIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	ctx := context.Background()

	svc := newSQLiteService(t, path)
	created, err := svc.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	// A second process start against the same file.
	again := newSQLiteService(t, path)
	created, err = again.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := again.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	users, err := again.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

func TestScenario_ImportForAlice(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteService(t, filepath.Join(t.TempDir(), "tracker.db"))
	_, err := svc.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	admin, err := svc.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	alice, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "alice-pw"})
	require.NoError(t, err)

	legacy := `[
		{"name": "Back Squat", "value": 225, "date": "2024-01-01"},
		{"name": "Front Squat", "value": 185, "date": "2024-01-02"},
		{"name": "Deadlift", "value": 315, "date": "2024-01-03"},
		{"name": "Overhead Press", "value": 95, "date": "2024-01-04"},
		{"name": "Bench Press", "value": 185, "date": "2024-01-05"},
		{"name": "Push Jerk", "value": 155, "date": "2024-01-06"},
		{"name": "Kettlebell Swing", "value": 53, "date": "2024-01-07"}
	]`
	report, err := svc.ImportReader(ctx, admin, ImportWeightlifts, strings.NewReader(legacy), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Imported)
	assert.Equal(t, 2, report.Skipped)

	recs, err := svc.ListWeightlifts(ctx, admin, &alice.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 5)
}

func TestScenario_DeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteService(t, filepath.Join(t.TempDir(), "tracker.db"))
	_, err := svc.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)
	admin, err := svc.Login(ctx, "admin", "admin")
	require.NoError(t, err)

	u, err := svc.Register(ctx, RegisterInput{Username: "leaver", Password: "pw-1234"})
	require.NoError(t, err)
	self := authz.Session{UserID: u.ID, Role: u.Role}
	_, err = svc.CreateWeightlift(ctx, self, u.ID, WeightliftInput{Movement: "Clean", Value: 100, Unit: "kg", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = svc.CreateBenchmark(ctx, self, u.ID, BenchmarkInput{Benchmark: "Grace", Value: 200, Date: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, admin, u.ID))

	lifts, err := svc.ListWeightlifts(ctx, admin, &u.ID)
	require.NoError(t, err)
	assert.Empty(t, lifts)
	benches, err := svc.ListBenchmarks(ctx, admin, &u.ID)
	require.NoError(t, err)
	assert.Empty(t, benches)

	_, err = svc.Login(ctx, "leaver", "pw-1234")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestScenario_TokenCarriesSession(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteService(t, filepath.Join(t.TempDir(), "tracker.db"))
	u, err := svc.Register(ctx, RegisterInput{Username: "tok", Password: "pw-1234"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "tok", "pw-1234")
	require.NoError(t, err)
	tok, err := svc.IssueToken(sess)
	require.NoError(t, err)
	parsed, err := svc.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, authz.Session{UserID: u.ID, Role: models.RoleUser}, parsed)
}
