package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"academy/internal/domain/account"
)

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("fourth request should be rejected")
	}
	// Other IPs keep their own bucket
	if !rl.Allow("5.6.7.8") {
		t.Error("different IP should be allowed")
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create("acct-1", "a@example.com", "ava", account.RolePro)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sess, ok := ss.Get(token)
	if !ok || sess.AccountID != "acct-1" || sess.Username != "ava" {
		t.Fatalf("unexpected session: %+v ok=%v", sess, ok)
	}
	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session should be gone after delete")
	}
}

// TestSessionStore_ConcurrentExpiredGet hammers Get on an expired token from
// many goroutines. Get evicts expired entries, so it must hold the write lock;
// run with -race to catch a regression to read-locked eviction.
func TestSessionStore_ConcurrentExpiredGet(t *testing.T) {
	ss := NewSessionStore()
	ss.sessions["stale"] = Session{
		AccountID: "acct-1",
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ss.Get("stale"); ok {
				t.Error("expired session should not be returned")
			}
		}()
	}
	wg.Wait()

	ss.mu.Lock()
	_, present := ss.sessions["stale"]
	ss.mu.Unlock()
	if present {
		t.Error("expired session should be evicted")
	}
}

func TestAuth_SetsSessionFromCookie(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create("acct-1", "a@example.com", "ava", account.RoleModerator)

	var got Session
	var ok bool
	h := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "academy_session", Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !ok || got.Role != account.RoleModerator {
		t.Errorf("expected moderator session in context, got %+v ok=%v", got, ok)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(account.RoleModerator, account.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name string
		sess *Session
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"pro blocked", &Session{AccountID: "a", Role: account.RolePro}, http.StatusForbidden},
		{"moderator allowed", &Session{AccountID: "m", Role: account.RoleModerator}, http.StatusNoContent},
		{"admin allowed", &Session{AccountID: "ad", Role: account.RoleAdmin}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.sess != nil {
				req = req.WithContext(ContextWithSession(req.Context(), *tc.sess))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing CSP header")
	}
}

func TestRequestLog_PreservesStatus(t *testing.T) {
	h := RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}
