package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/internal/domain/auth"
	"backoffice/internal/platform/metrics"
)

const testSecret = "test-secret"

type fakePermStore struct {
	allow map[string]bool
	err   error
}

func (f *fakePermStore) HasPermission(ctx context.Context, roleID, permission string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.allow[permission], nil
}

func jsonBody(payload string) io.Reader {
	return strings.NewReader(payload)
}

func authedRequest(t *testing.T, method, target string, claims auth.Claims) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, claims, time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthMiddlewareInjectsUser(t *testing.T) {
	var got auth.UserContext
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetUser(r.Context())
	})

	handler := Auth(testSecret)(next)
	req := authedRequest(t, http.MethodGet, "/", auth.Claims{
		UserID:       "u1",
		RestaurantID: "r1",
		RoleID:       "role1",
		RoleName:     auth.RoleManager,
		SessionID:    "s1",
	})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatalf("expected user in context")
	}
	if got.UserID != "u1" || got.RestaurantID != "r1" || got.RoleName != auth.RoleManager || got.SessionID != "s1" {
		t.Fatalf("user context = %+v", got)
	}
}

func TestAuthMiddlewarePassesThroughAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatalf("unexpected user in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Auth(testSecret)(next)

	for _, header := range []string{"", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusTeapot {
			t.Fatalf("header %q: anonymous request should reach handler, got %d", header, rec.Code)
		}
	}
}

func TestRequirePermission(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	store := &fakePermStore{allow: map[string]bool{auth.PermPayrollRead: true}}
	claims := auth.Claims{UserID: "u1", RestaurantID: "r1", RoleID: "role1", RoleName: auth.RoleManager}

	handler := Auth(testSecret)(RequirePermission(auth.PermPayrollRead, store)(next))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/", claims))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("granted permission returned %d", rec.Code)
	}

	handler = Auth(testSecret)(RequirePermission(auth.PermAuditRead, store)(next))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/", claims))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing permission returned %d, want 403", rec.Code)
	}

	// Anonymous requests never reach the permission store.
	handler = RequirePermission(auth.PermPayrollRead, store)(next)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request returned %d, want 401", rec.Code)
	}
}

func TestRateLimitEnforcesWindow(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(2, time.Minute)(next)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d rejected with %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request returned %d, want 429", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining header = %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}

	// A different client gets its own window.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second client rejected with %d", rec.Code)
	}
}

func TestBodyLimitRejectsOversizedWrites(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := BodyLimit(16)(next)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"note":"this body is far longer than sixteen bytes"}`))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"a":1}`))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("small body returned %d", rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	SecureHeaders(false)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Fatalf("HSTS must be off outside production")
	}

	rec = httptest.NewRecorder()
	SecureHeaders(true)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("HSTS missing in production mode")
	}
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Fatalf("request id missing from context")
		}
	})

	rec := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id not set on response")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given-id")
	RequestID(next).ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "given-id" {
		t.Fatalf("incoming request id not preserved: %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestLoggerRecordsMetrics(t *testing.T) {
	collector := metrics.New()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	handler := Logger(collector)(next)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	snapshot := collector.Snapshot()
	if snapshot["requestsTotal"] != uint64(1) {
		t.Fatalf("requestsTotal = %v", snapshot["requestsTotal"])
	}
	if snapshot["errorsTotal"] != uint64(1) {
		t.Fatalf("errorsTotal = %v", snapshot["errorsTotal"])
	}
}
