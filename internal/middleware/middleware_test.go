package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dentalgate/internal/ratelimit"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRateLimitRejectsOverQuota(t *testing.T) {
	limiter := ratelimit.New(2, time.Hour)
	h := RateLimit(limiter)(okHandler())

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", nil)
	req.RemoteAddr = "10.1.2.3:1234"
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}

	var env map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope is not JSON: %v", err)
	}
	if env["status_code"] != float64(http.StatusTooManyRequests) {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestClientIDPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ask", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := ClientID(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := ClientID(req); got != "127.0.0.1" {
		t.Fatalf("expected remote host, got %q", got)
	}
}

func TestBearerAuth(t *testing.T) {
	h := BearerAuth("s3cret", false)(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/cache/clear", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected 401, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rr.Code)
	}
}

func TestBearerAuthDisabledByDefaultSecret(t *testing.T) {
	h := BearerAuth("changeme", true)(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/cache/clear", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("disabled auth must pass, got %d", rr.Code)
	}
}

func TestAllowedHosts(t *testing.T) {
	h := AllowedHosts([]string{"localhost", "dental.example"})(okHandler())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "dental.example:8080"
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("allowed host rejected: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "evil.example"
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown host admitted: %d", rr.Code)
	}

	wildcard := AllowedHosts([]string{"*"})(okHandler())
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "anything.example"
	wildcard.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("wildcard should allow everything: %d", rr.Code)
	}
}

func TestRecovererConvertsPanicTo500(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var env map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope is not JSON: %v", err)
	}
	if env["error"] == "boom" {
		t.Fatalf("panic detail must not leak to the caller")
	}
}
