package core

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bwip/internal/config"
	"bwip/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{Environment: "local"}
	cfg.Server.RequestTimeout = 5 * time.Second
	s, err := NewServer(cfg, slog.Default())
	if err != nil {
		t.Fatalf("NewServer() error: %v", err)
	}
	return s
}

func TestRecovererCatchesPanics(t *testing.T) {
	s := newTestServer(t)

	h := s.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Error("request ID not stored in context")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("header %q != context %q", got, seen)
	}
}

func TestRequestIDReusesIncomingHeader(t *testing.T) {
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "req-abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("X-Request-Id"); got != "req-abc" {
		t.Errorf("X-Request-Id = %q, want reuse of incoming value", got)
	}
}

func TestActorMiddlewareFromHeaders(t *testing.T) {
	var actor types.Actor
	h := ActorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ = types.GetActor(r.Context())
	}))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Actor-ID", "user-7")
	r.Header.Set("X-Authority-ID", "auth-3")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if actor.ID != "user-7" || actor.AuthorityID != "auth-3" || actor.Type != types.ActorTypeUser {
		t.Errorf("actor = %+v", actor)
	}
}

func TestActorMiddlewareDefaultsToSystem(t *testing.T) {
	var actor types.Actor
	h := ActorMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ = types.GetActor(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if actor.ID != "system" || actor.Type != types.ActorTypeSystem {
		t.Errorf("actor = %+v, want system default", actor)
	}
}

func TestContextTimeoutSetsDeadline(t *testing.T) {
	var hasDeadline bool
	h := ContextTimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !hasDeadline {
		t.Error("request context has no deadline")
	}
}

func TestCORSPreflight(t *testing.T) {
	h := NewCORSMiddleware([]string{"https://portal.example.ie"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("preflight must not reach the handler")
		}))

	r := httptest.NewRequest(http.MethodOptions, "/v1/posters", nil)
	r.Header.Set("Origin", "https://portal.example.ie")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.example.ie" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	h := NewCORSMiddleware([]string{"https://portal.example.ie"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want unset for unknown origin", got)
	}
}

func TestRequestLoggerRedactsHeaders(t *testing.T) {
	// The logger output itself is not asserted; this exercises the path and
	// confirms the wrapped handler still runs.
	called := false
	h := RequestLogger(slog.Default(), []string{"Authorization"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if !called {
		t.Error("handler not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, capture broke passthrough", w.Code)
	}
}
