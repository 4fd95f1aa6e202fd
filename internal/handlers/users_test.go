package handlers

import (
	"net/http"
	"strings"
	"testing"

	"prtracker/internal/apperr"
	"prtracker/internal/models"
	"prtracker/internal/service"
)

func TestGetMe(t *testing.T) {
	m := newMocks()
	m.users.user = &models.User{ID: 1, Username: "alice", PasswordDigest: "secret-digest", Role: models.RoleUser}
	r := newTestRouter(m.svc())

	w := do(r, http.MethodGet, "/api/v1/me", userToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if m.users.lastID != userSession.UserID {
		t.Fatalf("looked up %d, want caller", m.users.lastID)
	}
	if strings.Contains(w.Body.String(), "secret-digest") {
		t.Fatalf("digest leaked: %s", w.Body.String())
	}
}

func TestChangePassword(t *testing.T) {
	m := newMocks()
	r := newTestRouter(m.svc())

	w := do(r, http.MethodPut, "/api/v1/me/password", userToken, `{"old_password":"old1","new_password":"new1"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if m.users.lastOld != "old1" || m.users.lastNew != "new1" {
		t.Fatalf("passwords not passed: %q %q", m.users.lastOld, m.users.lastNew)
	}

	m.users.err = apperr.Unauthorized()
	if w := do(r, http.MethodPut, "/api/v1/me/password", userToken, `{"old_password":"x","new_password":"new1"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong old password: status %d, want 401", w.Code)
	}
}

func TestListUsers_CoachAllowed(t *testing.T) {
	m := newMocks()
	m.users.users = []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
	r := newTestRouter(m.svc())

	w := do(r, http.MethodGet, "/api/v1/admin/users", coachToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if m.users.lastSession != coachSession {
		t.Fatalf("session=%+v", m.users.lastSession)
	}
}

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	r := newTestRouter(newMocks().svc())

	routes := []struct{ method, path, body string }{
		{http.MethodPost, "/api/v1/admin/users", `{"username":"carol","password":"pw12","role":"coach"}`},
		{http.MethodPatch, "/api/v1/admin/users/5", `{"role":"admin"}`},
		{http.MethodDelete, "/api/v1/admin/users/5", ""},
		{http.MethodPut, "/api/v1/admin/users/5/password", `{"password":"pw12"}`},
		{http.MethodPost, "/api/v1/admin/import?kind=weightlift&user_id=5", `[]`},
	}
	for _, rt := range routes {
		for _, token := range []string{userToken, coachToken} {
			if w := do(r, rt.method, rt.path, token, rt.body); w.Code != http.StatusForbidden {
				t.Fatalf("%s %s with %s: status %d, want 403", rt.method, rt.path, token, w.Code)
			}
		}
	}
}

func TestAdminUserManagement(t *testing.T) {
	m := newMocks()
	m.users.user = &models.User{ID: 5, Username: "carol", Role: models.RoleCoach}
	r := newTestRouter(m.svc())

	w := do(r, http.MethodPost, "/api/v1/admin/users", adminToken, `{"username":"carol","password":"pw12","role":"coach"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body=%s", w.Code, w.Body.String())
	}
	if m.users.lastNewUser.Role != models.RoleCoach {
		t.Fatalf("role not bound: %+v", m.users.lastNewUser)
	}

	w = do(r, http.MethodPatch, "/api/v1/admin/users/5", adminToken, `{"full_name":"Carol C"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d", w.Code)
	}
	if p := m.users.lastPatch; p.Role != nil || p.FullName == nil || *p.FullName != "Carol C" {
		t.Fatalf("unexpected patch %+v", p)
	}

	if w := do(r, http.MethodPut, "/api/v1/admin/users/5/password", adminToken, `{"password":"fresh"}`); w.Code != http.StatusNoContent {
		t.Fatalf("reset: status %d", w.Code)
	}
	if m.users.lastID != 5 || m.users.lastNew != "fresh" {
		t.Fatalf("reset args: %d %q", m.users.lastID, m.users.lastNew)
	}

	if w := do(r, http.MethodDelete, "/api/v1/admin/users/5", adminToken, ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
}

func TestDeleteUser_SelfIsRejected(t *testing.T) {
	m := newMocks()
	m.users.err = apperr.Validation("id", "admins cannot delete their own account")
	r := newTestRouter(m.svc())

	w := do(r, http.MethodDelete, "/api/v1/admin/users/3", adminToken, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if decodeBody(t, w)["field"] != "id" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestImportLegacy(t *testing.T) {
	m := newMocks()
	m.importer.report = &service.ImportReport{Kind: service.ImportWeightlifts, UserID: 5, Imported: 1, Skipped: 0}
	r := newTestRouter(m.svc())

	payload := `[{"name":"Deadlift","value":315,"date":"2024-01-01"}]`
	w := do(r, http.MethodPost, "/api/v1/admin/import?kind=weightlifts&user_id=5", adminToken, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if m.importer.lastKind != service.ImportWeightlifts || m.importer.lastTarget != 5 {
		t.Fatalf("args: %q %d", m.importer.lastKind, m.importer.lastTarget)
	}
	if m.importer.lastBody != payload {
		t.Fatalf("body not streamed: %q", m.importer.lastBody)
	}

	for _, path := range []string{
		"/api/v1/admin/import?kind=rowing&user_id=5",
		"/api/v1/admin/import?kind=benchmark",
	} {
		if w := do(r, http.MethodPost, path, adminToken, `[]`); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, w.Code)
		}
	}
}

func TestImportLegacy_BodyLimit(t *testing.T) {
	old := maxImportBodyBytes
	maxImportBodyBytes = 64
	t.Cleanup(func() { maxImportBodyBytes = old })

	m := newMocks()
	m.importer.report = &service.ImportReport{Kind: service.ImportBenchmarks, UserID: 5}
	r := newTestRouter(m.svc())

	big := `[` + strings.Repeat(`{"name":"Fran","value":300,"date":"2024-01-01"},`, 10) + `{}]`
	w := do(r, http.MethodPost, "/api/v1/admin/import?kind=benchmark&user_id=5", adminToken, big)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d, want 413; body=%s", w.Code, w.Body.String())
	}
	if len(m.importer.lastBody) > 64 {
		t.Fatalf("read %d bytes past the limit", len(m.importer.lastBody))
	}

	if w := do(r, http.MethodPost, "/api/v1/admin/import?kind=benchmark&user_id=5", adminToken, `[]`); w.Code != http.StatusOK {
		t.Fatalf("small body: status %d", w.Code)
	}
}
