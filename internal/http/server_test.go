package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fintrack/internal/directory"
	"fintrack/internal/kv"
	"fintrack/internal/ledger"
	"fintrack/internal/services"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := directory.New(kv.NewMemory())
	svc := services.NewLedgerService(ledger.New(dir), nil)
	srv := NewServer(":0", dir, svc)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func signUpAndIn(t *testing.T, srv *Server, name, email, password string) {
	t.Helper()
	rr := postForm(srv, "/signup", url.Values{
		"name": {name}, "email": {email}, "password": {password},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup status=%d body=%s", rr.Code, rr.Body.String())
	}
	rr = postForm(srv, "/login", url.Values{
		"email": {email}, "password": {password},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "FinTrack") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestSignupValidationAndDuplicate(t *testing.T) {
	srv := newTestServer(t)

	// Password too short
	rr := postForm(srv, "/signup", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"123"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = postForm(srv, "/signup", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"secret"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Account created") {
		t.Fatalf("unexpected signup body: %s", rr.Body.String())
	}

	// Same email, different case
	rr = postForm(srv, "/signup", url.Values{
		"name": {"Other"}, "email": {"ALICE@EXAMPLE.COM"}, "password": {"secret"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate, got %d", rr.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/signup", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"secret"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup status=%d", rr.Code)
	}

	rr = postForm(srv, "/login", url.Values{
		"email": {"alice@example.com"}, "password": {"wrong"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad password, got %d", rr.Code)
	}

	rr = postForm(srv, "/login", url.Values{
		"email": {"alice@example.com"}, "password": {"secret"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/dashboard" {
		t.Fatalf("HX-Redirect=%q, want /dashboard", got)
	}

	// Signed-in index redirects to the dashboard
	rr = get(srv, "/")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("index status=%d, want 303", rr.Code)
	}

	rr = get(srv, "/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Alice") {
		t.Fatalf("dashboard missing greeting")
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/dashboard")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("Location=%q, want /", got)
	}

	// HTMX requests get an HX-Redirect instead
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Fatalf("HX-Redirect=%q, want /", got)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	signUpAndIn(t, srv, "Alice", "alice@example.com", "secret")

	// Wrong method
	rr := get(srv, "/transactions")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Invalid amount
	rr = postForm(srv, "/transactions", url.Values{
		"type": {"expense"}, "amount": {"abc"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	rr = postForm(srv, "/transactions", url.Values{
		"type": {"income"}, "amount": {"1000"}, "category": {"Salary"}, "date": {"2026-08-01"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "transaction:created") {
		t.Fatalf("missing transaction:created trigger: %s", rr.Header().Get("HX-Trigger"))
	}

	// Negative amounts are stored as their magnitude, blank category defaults
	rr = postForm(srv, "/transactions", url.Values{
		"type": {"expense"}, "amount": {"-300"}, "date": {"2026-08-02"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = get(srv, "/ui/overview")
	if rr.Code != http.StatusOK {
		t.Fatalf("overview status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "700.00") {
		t.Fatalf("overview missing balance: %s", body)
	}
	if !strings.Contains(body, "Other") {
		t.Fatalf("overview missing default category: %s", body)
	}

	// Chart payload
	rr = get(srv, "/api/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", rr.Code)
	}
	var payload metricsPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("metrics decode: %v", err)
	}
	if len(payload.Categories.Labels) != 2 {
		t.Fatalf("categories=%v, want 2 entries", payload.Categories.Labels)
	}

	// Find an id to delete from the overview markup
	idx := strings.Index(body, `"id": "tx_`)
	if idx < 0 {
		t.Fatalf("no transaction id in overview: %s", body)
	}
	rest := body[idx+len(`"id": "`):]
	id := rest[:strings.Index(rest, `"`)]

	rr = postForm(srv, "/transactions/delete", url.Values{"id": {id}})
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "transaction:deleted") {
		t.Fatalf("missing transaction:deleted trigger")
	}

	// Deleting an unknown id is still a 200
	rr = postForm(srv, "/transactions/delete", url.Values{"id": {"tx_0"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("delete missing id status=%d", rr.Code)
	}
}

func TestEraseRequiresConfirmation(t *testing.T) {
	srv := newTestServer(t)
	signUpAndIn(t, srv, "Alice", "alice@example.com", "secret")

	rr := postForm(srv, "/transactions", url.Values{
		"type": {"income"}, "amount": {"500"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("create status=%d", rr.Code)
	}

	rr = postForm(srv, "/transactions/erase", url.Values{})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without confirmation, got %d", rr.Code)
	}

	rr = postForm(srv, "/transactions/erase", url.Values{"confirm": {"yes"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("erase status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "ledger:erased") {
		t.Fatalf("missing ledger:erased trigger")
	}

	rr = get(srv, "/ui/overview")
	if !strings.Contains(rr.Body.String(), "No transactions yet") {
		t.Fatalf("overview not empty after erase: %s", rr.Body.String())
	}
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	signUpAndIn(t, srv, "Alice", "alice@example.com", "secret")

	rr := postForm(srv, "/logout", url.Values{})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("logout status=%d", rr.Code)
	}

	rr = get(srv, "/dashboard")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("dashboard after logout status=%d, want 303", rr.Code)
	}
}

func TestRateLimiterAllowsThenBlocks(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly blocked", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Fatalf("request 61 should be blocked")
	}
	// A different client is unaffected
	if !rl.allow("5.6.7.8") {
		t.Fatalf("other client should be allowed")
	}
}
