package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"prtracker/internal/apperr"
	"prtracker/internal/models"
	"prtracker/internal/repository"
)

// memStore is an in-memory stand-in for the three repositories.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]models.User
	weightlifts map[int64]models.WeightliftRecord
	benchmarks  map[int64]models.BenchmarkRecord
	failWrites  error
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[int64]models.User{},
		weightlifts: map[int64]models.WeightliftRecord{},
		benchmarks:  map[int64]models.BenchmarkRecord{},
	}
}

func (m *memStore) repos() *repository.Repository {
	return &repository.Repository{
		Users:       memUsers{m},
		Weightlifts: memWeightlifts{m},
		Benchmarks:  memBenchmarks{m},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(username string, role models.Role) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.users[id] = models.User{ID: id, Username: username, PasswordDigest: "h:pw", Role: role}
	return id
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u models.User) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.users {
		if existing.Username == u.Username {
			return 0, apperr.Conflict("username %q is already taken", u.Username)
		}
	}
	u.ID = r.m.id()
	r.m.users[u.ID] = u
	return u.ID, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return &u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r memUsers) Count(_ context.Context) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.m.users), nil
}

func (r memUsers) UpdatePassword(_ context.Context, id int64, digest string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordDigest = digest
	r.m.users[id] = u
	return nil
}

func (r memUsers) UpdateProfile(_ context.Context, id int64, role models.Role, fullName string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.Role, u.FullName = role, fullName
	r.m.users[id] = u
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return apperr.NotFound("user not found")
	}
	for rid, rec := range r.m.weightlifts {
		if rec.UserID == id {
			delete(r.m.weightlifts, rid)
		}
	}
	for rid, rec := range r.m.benchmarks {
		if rec.UserID == id {
			delete(r.m.benchmarks, rid)
		}
	}
	delete(r.m.users, id)
	return nil
}

func (r memUsers) EnsureAdmin(ctx context.Context, u models.User) (bool, error) {
	if n, _ := r.Count(ctx); n > 0 {
		return false, nil
	}
	u.Role = models.RoleAdmin
	_, err := r.Create(ctx, u)
	return err == nil, err
}

type memWeightlifts struct{ m *memStore }

func (r memWeightlifts) Create(_ context.Context, rec models.WeightliftRecord) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWrites != nil {
		return 0, r.m.failWrites
	}
	rec.ID = r.m.id()
	r.m.weightlifts[rec.ID] = rec
	return rec.ID, nil
}

func (r memWeightlifts) GetByID(_ context.Context, id int64) (*models.WeightliftRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.weightlifts[id]
	if !ok {
		return nil, apperr.NotFound("record not found")
	}
	return &rec, nil
}

func (r memWeightlifts) ListByUser(_ context.Context, userID int64) ([]models.WeightliftRecord, error) {
	return r.list(func(rec models.WeightliftRecord) bool { return rec.UserID == userID }), nil
}

func (r memWeightlifts) ListAll(_ context.Context) ([]models.WeightliftRecord, error) {
	return r.list(func(models.WeightliftRecord) bool { return true }), nil
}

func (r memWeightlifts) list(keep func(models.WeightliftRecord) bool) []models.WeightliftRecord {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.WeightliftRecord{}
	for _, rec := range r.m.weightlifts {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return isLater(out[i].Date, out[i].ID, out[j].Date, out[j].ID) })
	return out
}

func (r memWeightlifts) Update(_ context.Context, rec models.WeightliftRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.weightlifts[rec.ID]; !ok {
		return apperr.NotFound("record not found")
	}
	r.m.weightlifts[rec.ID] = rec
	return nil
}

func (r memWeightlifts) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.weightlifts[id]; !ok {
		return apperr.NotFound("record not found")
	}
	delete(r.m.weightlifts, id)
	return nil
}

type memBenchmarks struct{ m *memStore }

func (r memBenchmarks) Create(_ context.Context, rec models.BenchmarkRecord) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failWrites != nil {
		return 0, r.m.failWrites
	}
	rec.ID = r.m.id()
	r.m.benchmarks[rec.ID] = rec
	return rec.ID, nil
}

func (r memBenchmarks) GetByID(_ context.Context, id int64) (*models.BenchmarkRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rec, ok := r.m.benchmarks[id]
	if !ok {
		return nil, apperr.NotFound("record not found")
	}
	return &rec, nil
}

func (r memBenchmarks) ListByUser(_ context.Context, userID int64) ([]models.BenchmarkRecord, error) {
	return r.list(func(rec models.BenchmarkRecord) bool { return rec.UserID == userID }), nil
}

func (r memBenchmarks) ListAll(_ context.Context) ([]models.BenchmarkRecord, error) {
	return r.list(func(models.BenchmarkRecord) bool { return true }), nil
}

func (r memBenchmarks) list(keep func(models.BenchmarkRecord) bool) []models.BenchmarkRecord {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.BenchmarkRecord{}
	for _, rec := range r.m.benchmarks {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return isLater(out[i].Date, out[i].ID, out[j].Date, out[j].ID) })
	return out
}

func (r memBenchmarks) Update(_ context.Context, rec models.BenchmarkRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.benchmarks[rec.ID]; !ok {
		return apperr.NotFound("record not found")
	}
	r.m.benchmarks[rec.ID] = rec
	return nil
}

func (r memBenchmarks) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.benchmarks[id]; !ok {
		return apperr.NotFound("record not found")
	}
	delete(r.m.benchmarks, id)
	return nil
}

// plainHasher is a fast PasswordHasher that counts Verify calls.
type plainHasher struct {
	mu       sync.Mutex
	verifies int
}

func (h *plainHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperr.Validation("password", "must not be blank")
	}
	return "h:" + password, nil
}

func (h *plainHasher) Verify(password, digest string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return digest == "h:"+password
}

func (h *plainHasher) verifyCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}
