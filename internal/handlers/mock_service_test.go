package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/catalog"
	"prtracker/internal/models"
	"prtracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockTokens maps bearer strings to sessions; anything else fails to parse.
type mockTokens struct {
	sessions map[string]authz.Session
	issued   string
	issueErr error

	lastIssued     authz.Session
	lastParseToken string
}

func (m *mockTokens) IssueToken(s authz.Session) (string, error) {
	m.lastIssued = s
	return m.issued, m.issueErr
}

func (m *mockTokens) ParseToken(token string) (authz.Session, error) {
	m.lastParseToken = token
	s, ok := m.sessions[token]
	if !ok {
		return authz.Session{}, errors.New("bad token")
	}
	return s, nil
}

type mockRecords struct {
	weightlift  *models.WeightliftRecord
	weightlifts []models.WeightliftRecord
	benchmark   *models.BenchmarkRecord
	benchmarks  []models.BenchmarkRecord
	prs         *models.CurrentPRs
	wlProgress  *models.WeightliftProgress
	bmProgress  *models.BenchmarkProgress
	err         error

	lastSession  authz.Session
	lastOwner    int64
	lastRecordID int64
	lastFilter   *int64
	lastName     string
	lastWLInput  service.WeightliftInput
	lastBMInput  service.BenchmarkInput
	lastWLPatch  service.WeightliftPatch
	lastBMPatch  service.BenchmarkPatch
}

func (m *mockRecords) CreateWeightlift(_ context.Context, s authz.Session, ownerID int64, in service.WeightliftInput) (*models.WeightliftRecord, error) {
	m.lastSession, m.lastOwner, m.lastWLInput = s, ownerID, in
	return m.weightlift, m.err
}

func (m *mockRecords) ListWeightlifts(_ context.Context, s authz.Session, filter *int64) ([]models.WeightliftRecord, error) {
	m.lastSession, m.lastFilter = s, filter
	return m.weightlifts, m.err
}

func (m *mockRecords) UpdateWeightlift(_ context.Context, s authz.Session, id int64, p service.WeightliftPatch) (*models.WeightliftRecord, error) {
	m.lastSession, m.lastRecordID, m.lastWLPatch = s, id, p
	return m.weightlift, m.err
}

func (m *mockRecords) DeleteWeightlift(_ context.Context, s authz.Session, id int64) error {
	m.lastSession, m.lastRecordID = s, id
	return m.err
}

func (m *mockRecords) WeightliftProgress(_ context.Context, s authz.Session, userID *int64, movement string) (*models.WeightliftProgress, error) {
	m.lastSession, m.lastFilter, m.lastName = s, userID, movement
	return m.wlProgress, m.err
}

func (m *mockRecords) CreateBenchmark(_ context.Context, s authz.Session, ownerID int64, in service.BenchmarkInput) (*models.BenchmarkRecord, error) {
	m.lastSession, m.lastOwner, m.lastBMInput = s, ownerID, in
	return m.benchmark, m.err
}

func (m *mockRecords) ListBenchmarks(_ context.Context, s authz.Session, filter *int64) ([]models.BenchmarkRecord, error) {
	m.lastSession, m.lastFilter = s, filter
	return m.benchmarks, m.err
}

func (m *mockRecords) UpdateBenchmark(_ context.Context, s authz.Session, id int64, p service.BenchmarkPatch) (*models.BenchmarkRecord, error) {
	m.lastSession, m.lastRecordID, m.lastBMPatch = s, id, p
	return m.benchmark, m.err
}

func (m *mockRecords) DeleteBenchmark(_ context.Context, s authz.Session, id int64) error {
	m.lastSession, m.lastRecordID = s, id
	return m.err
}

func (m *mockRecords) BenchmarkProgress(_ context.Context, s authz.Session, userID *int64, benchmark string) (*models.BenchmarkProgress, error) {
	m.lastSession, m.lastFilter, m.lastName = s, userID, benchmark
	return m.bmProgress, m.err
}

func (m *mockRecords) CurrentPRs(_ context.Context, s authz.Session, userID *int64) (*models.CurrentPRs, error) {
	m.lastSession, m.lastFilter = s, userID
	return m.prs, m.err
}

type mockUsers struct {
	user     *models.User
	users    []models.User
	session  authz.Session
	err      error
	loginErr error

	lastSession  authz.Session
	lastID       int64
	lastRegister service.RegisterInput
	lastNewUser  service.NewUserInput
	lastPatch    service.UserPatch
	lastOld      string
	lastNew      string
	lastUsername string
	lastPassword string
}

func (m *mockUsers) Register(_ context.Context, in service.RegisterInput) (*models.User, error) {
	m.lastRegister = in
	return m.user, m.err
}

func (m *mockUsers) Login(_ context.Context, username, password string) (authz.Session, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.session, m.loginErr
}

func (m *mockUsers) ChangePassword(_ context.Context, s authz.Session, oldPassword, newPassword string) error {
	m.lastSession, m.lastOld, m.lastNew = s, oldPassword, newPassword
	return m.err
}

func (m *mockUsers) AdminResetPassword(_ context.Context, s authz.Session, id int64, newPassword string) error {
	m.lastSession, m.lastID, m.lastNew = s, id, newPassword
	return m.err
}

func (m *mockUsers) CreateUser(_ context.Context, s authz.Session, in service.NewUserInput) (*models.User, error) {
	m.lastSession, m.lastNewUser = s, in
	return m.user, m.err
}

func (m *mockUsers) UpdateUser(_ context.Context, s authz.Session, id int64, p service.UserPatch) (*models.User, error) {
	m.lastSession, m.lastID, m.lastPatch = s, id, p
	return m.user, m.err
}

func (m *mockUsers) DeleteUser(_ context.Context, s authz.Session, id int64) error {
	m.lastSession, m.lastID = s, id
	return m.err
}

func (m *mockUsers) ListUsers(_ context.Context, s authz.Session) ([]models.User, error) {
	m.lastSession = s
	return m.users, m.err
}

func (m *mockUsers) GetUser(_ context.Context, s authz.Session, id int64) (*models.User, error) {
	m.lastSession, m.lastID = s, id
	return m.user, m.err
}

func (m *mockUsers) FindUser(_ context.Context, s authz.Session, username string) (*models.User, error) {
	m.lastSession, m.lastUsername = s, username
	return m.user, m.err
}

func (m *mockUsers) EnsureDefaultAdmin(context.Context) (bool, error) { return false, nil }

type mockImporter struct {
	report *service.ImportReport
	err    error

	lastKind   service.ImportKind
	lastTarget int64
	lastBody   string
}

func (m *mockImporter) ImportLegacy(_ context.Context, _ authz.Session, kind service.ImportKind, _ string, target int64) (*service.ImportReport, error) {
	m.lastKind, m.lastTarget = kind, target
	return m.report, m.err
}

func (m *mockImporter) ImportReader(_ context.Context, _ authz.Session, kind service.ImportKind, r io.Reader, target int64) (*service.ImportReport, error) {
	m.lastKind, m.lastTarget = kind, target
	b, err := io.ReadAll(r)
	m.lastBody = string(b)
	if err != nil {
		verr := apperr.Validation("file", "invalid legacy JSON: %v", err)
		verr.Err = err
		return nil, verr
	}
	return m.report, m.err
}

// ---- Shared Test Helpers ----

const (
	userToken  = "user-token"
	coachToken = "coach-token"
	adminToken = "admin-token"
)

var (
	userSession  = authz.Session{UserID: 1, Role: models.RoleUser}
	coachSession = authz.Session{UserID: 2, Role: models.RoleCoach}
	adminSession = authz.Session{UserID: 3, Role: models.RoleAdmin}
)

type mocks struct {
	records  *mockRecords
	users    *mockUsers
	tokens   *mockTokens
	importer *mockImporter
}

func newMocks() *mocks {
	return &mocks{
		records: &mockRecords{},
		users:   &mockUsers{},
		tokens: &mockTokens{sessions: map[string]authz.Session{
			userToken:  userSession,
			coachToken: coachSession,
			adminToken: adminSession,
		}},
		importer: &mockImporter{},
	}
}

func (m *mocks) svc() *service.Service {
	return &service.Service{
		Records:  m.records,
		Users:    m.users,
		Tokens:   m.tokens,
		Importer: m.importer,
		Catalog:  catalog.Default(),
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// do sends one request through r. An empty body sends none.
func do(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header = authHeader(token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return m
}
