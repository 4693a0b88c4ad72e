package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestorfincas/gestor-fincas-api/internal/infrastructure/config"
	"github.com/gestorfincas/gestor-fincas-api/internal/infrastructure/db/sqlite"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	store, err := sqlite.Open(context.Background(), sqlite.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Port:      "3001",
		Env:       "test",
		JWTSecret: "your-super-secret-jwt-key",
		TokenTTL:  24 * time.Hour,
	}
	return NewRouter(store, cfg, zerolog.Nop())
}

func doJSON(e *echo.Echo, method, path, body string, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func TestEndToEnd_LoginThenProfile(t *testing.T) {
	e := newTestRouter(t)

	// Login with the seeded administrator.
	rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login: expected a token, got %v", body)
	}
	user, _ := body["user"].(map[string]any)
	if user["username"] != "admin" {
		t.Fatalf("login: unexpected user payload: %+v", user)
	}

	// Profile with the freshly issued token.
	header := http.Header{}
	header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec, body = doJSON(e, http.MethodGet, "/api/profile", "", header)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	profileUser, _ := body["user"].(map[string]any)
	if profileUser["userId"] != float64(1) || profileUser["username"] != "admin" {
		t.Fatalf("profile: unexpected user payload: %+v", profileUser)
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Fatalf("profile: expected a timestamp")
	}
}

func TestEndToEnd_ProfileRejectsMissingAndGarbageTokens(t *testing.T) {
	e := newTestRouter(t)

	rec, body := doJSON(e, http.MethodGet, "/api/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", rec.Code)
	}
	if body["message"] != "Unauthorized - Valid JWT token required" {
		t.Fatalf("no header: unexpected message: %v", body["message"])
	}

	header := http.Header{}
	header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec, _ = doJSON(e, http.MethodGet, "/api/profile", "", header)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestEndToEnd_LoginFailures(t *testing.T) {
	e := newTestRouter(t)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if body["message"] != "Invalid credentials" {
		t.Fatalf("wrong password: unexpected message: %v", body["message"])
	}

	// Unknown username renders the identical envelope.
	rec, body = doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"whatever"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
	if body["message"] != "Invalid credentials" {
		t.Fatalf("unknown user: unexpected message: %v", body["message"])
	}

	rec, body = doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"admin"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400, got %d", rec.Code)
	}
	if body["message"] != "Username and password are required" {
		t.Fatalf("missing password: unexpected message: %v", body["message"])
	}
}

func TestEndToEnd_HealthAndSmokeTest(t *testing.T) {
	e := newTestRouter(t)

	rec, body := doJSON(e, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("health: unexpected body: %+v", body)
	}

	rec, body = doJSON(e, http.MethodGet, "/api/test-db", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("test-db: expected 200, got %d", rec.Code)
	}
	if body["status"] != "success" || body["message"] != "Database connection working correctly" {
		t.Fatalf("test-db: unexpected body: %+v", body)
	}
	records, _ := body["existingRecords"].([]any)
	if len(records) == 0 {
		t.Fatalf("test-db: expected at least the seeded marker row")
	}

	// Every call inserts a marker, so a second call sees one more row.
	_, body = doJSON(e, http.MethodGet, "/api/test-db", "", nil)
	more, _ := body["existingRecords"].([]any)
	if len(more) != len(records)+1 {
		t.Fatalf("test-db: expected %d rows on the second call, got %d", len(records)+1, len(more))
	}
}

func TestEndToEnd_RootBanner(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Gestor Fincas API" {
		t.Fatalf("unexpected banner: %q", rec.Body.String())
	}
}
