package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Store.Driver = "memory"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "test"
	cfg.Queue.Backend = "memory"
	cfg.Backup.Retention = 5
	return cfg
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("EDUDESK_ADMIN_PASSWORD", "test-admin-pass")

	cfg := testConfig()
	deps, err := BuildDependencies(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildDependencies() error = %v", err)
	}
	t.Cleanup(func() { deps.Store.Close() })
	return SetupRouter(cfg, deps)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("success = false, body %s", rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
}

func TestEntityCRUDOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/students", "", map[string]interface{}{
		"firstName": "Aisha", "lastName": "Khan", "grade": "10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/students = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
	}
	decodeData(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created student has no id")
	}

	// List
	rec = doJSON(t, router, http.MethodGet, "/api/students", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/students = %d", rec.Code)
	}
	var list []struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("list = %+v, want the created record", list)
	}

	// Partial update leaves other fields alone.
	rec = doJSON(t, router, http.MethodPut, "/api/students/"+created.ID, "", map[string]interface{}{
		"grade": "11",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		FirstName string `json:"firstName"`
		Grade     string `json:"grade"`
	}
	decodeData(t, rec, &updated)
	if updated.Grade != "11" || updated.FirstName != "Aisha" {
		t.Errorf("updated = %+v, want grade 11 and firstName untouched", updated)
	}

	// Delete, then 404.
	rec = doJSON(t, router, http.MethodDelete, "/api/students/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/students/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET deleted = %d, want 404", rec.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/students", "", map[string]interface{}{
		"lastName": "Khan",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST missing firstName = %d, want 400", rec.Code)
	}
}

func TestSuperAdminRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/super-admin/audit/logs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated = %d, want 401", rec.Code)
	}

	// Login as the seeded default admin.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "admin@edudesk.local", "password": "test-admin-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d, body %s", rec.Code, rec.Body.String())
	}
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	decodeData(t, rec, &login)

	rec = doJSON(t, router, http.MethodGet, "/api/super-admin/audit/logs", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated audit logs = %d, want 200", rec.Code)
	}
}

func TestWrongCredentialsRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "admin@edudesk.local", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", rec.Code)
	}
}

func TestBookIssueFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/books", "", map[string]interface{}{
		"title": "The Pearl", "quantity": 1, "available": 1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create book = %d, body %s", rec.Code, rec.Body.String())
	}
	var book struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &book)

	rec = doJSON(t, router, http.MethodPost, "/api/book_issues", "", map[string]interface{}{
		"bookId": book.ID, "studentId": "s1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue = %d, body %s", rec.Code, rec.Body.String())
	}
	var issue struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeData(t, rec, &issue)
	if issue.Status != "issued" {
		t.Errorf("issue status = %q, want issued", issue.Status)
	}

	// Second issue fails, no copies left.
	rec = doJSON(t, router, http.MethodPost, "/api/book_issues", "", map[string]interface{}{
		"bookId": book.ID, "studentId": "s2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("issue with no copies = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/book_issues/"+issue.ID+"/return", "", map[string]interface{}{
		"fineAmount": 0,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("return = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestStatsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/stats/dashboard",
		"/api/stats/attendance?date=2026-03-15",
		"/api/stats/grades",
		"/api/stats/finance",
	} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/stats/attendance?date=15-03-2026", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", rec.Code)
	}
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/teachers", "", map[string]interface{}{
		"firstName": "Rohan", "lastName": "Iyer",
	})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "admin@edudesk.local", "password": "test-admin-pass",
	})
	var login struct {
		AccessToken string `json:"accessToken"`
	}
	decodeData(t, rec, &login)

	rec = doJSON(t, router, http.MethodGet, "/api/super-admin/audit/logs", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit logs = %d", rec.Code)
	}
	var page struct {
		Logs []struct {
			Method string `json:"method"`
			Path   string `json:"path"`
			Entity string `json:"entity"`
		} `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}

	found := false
	for _, entry := range page.Logs {
		if entry.Method == http.MethodPost && entry.Path == "/api/teachers" {
			found = true
			if entry.Entity != "teachers" {
				t.Errorf("entity = %q, want teachers", entry.Entity)
			}
		}
	}
	if !found {
		t.Errorf("no audit entry for POST /api/teachers in %+v", page.Logs)
	}
}
