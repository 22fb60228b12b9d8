package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
)

func newAuthBackend(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		switch r.URL.Path {
		case "/auth/login", "/auth/signup":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "good" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
				return
			}
			name := body["name"]
			if name == "" {
				name = "Ada"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-abc",
				"user":  map[string]string{"id": "u1", "name": name, "email": body["email"], "role": "member"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLogin_PersistsPairAndRestoresWithoutNetwork(t *testing.T) {
	var requests atomic.Int64
	srv := newAuthBackend(t, &requests)
	defer srv.Close()

	dir := t.TempDir()
	client := api.New(srv.URL)

	s, err := Open(dir, client)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("fresh store should be anonymous")
	}

	if err := s.Login(context.Background(), "a@b.c", "good"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.Authenticated() || s.Token() != "tok-abc" {
		t.Fatalf("expected authenticated state, token=%q", s.Token())
	}
	id, ok := s.Identity()
	if !ok || id.Name != "Ada" || id.Role != model.RoleMember {
		t.Fatalf("unexpected identity, got=%+v ok=%v", id, ok)
	}

	// Restore must round-trip the same pair with no network call.
	before := requests.Load()
	restored, err := Open(dir, client)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if requests.Load() != before {
		t.Fatalf("restore performed %d network calls", requests.Load()-before)
	}
	if restored.Token() != "tok-abc" {
		t.Fatalf("restored token, got=%q", restored.Token())
	}
	rid, ok := restored.Identity()
	if !ok || rid != id {
		t.Fatalf("restored identity mismatch, got=%+v want=%+v", rid, id)
	}
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	srv := newAuthBackend(t, nil)
	defer srv.Close()

	dir := t.TempDir()
	client := api.New(srv.URL)
	s, err := Open(dir, client)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = s.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("expected server message, got=%q", err.Error())
	}
	if s.Authenticated() {
		t.Fatal("failed login must not authenticate")
	}

	// Durable state untouched too: a reopen stays anonymous.
	reopened, err := Open(dir, client)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Authenticated() {
		t.Fatal("failed login must not persist anything")
	}
}

func TestLogout_ClearsMemoryAndDurableState(t *testing.T) {
	srv := newAuthBackend(t, nil)
	defer srv.Close()

	dir := t.TempDir()
	client := api.New(srv.URL)
	s, err := Open(dir, client)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Login(context.Background(), "a@b.c", "good"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Authenticated() || s.Token() != "" {
		t.Fatal("logout must clear in-memory state")
	}
	if _, ok := s.Identity(); ok {
		t.Fatal("logout must clear the identity")
	}

	reopened, err := Open(dir, client)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Authenticated() {
		t.Fatal("logout must clear the durable pair")
	}
}

func TestSignup_SameContractAsLogin(t *testing.T) {
	srv := newAuthBackend(t, nil)
	defer srv.Close()

	s, err := Open(t.TempDir(), api.New(srv.URL))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Signup(context.Background(), "Grace", "g@b.c", "good", model.RoleAdmin); err != nil {
		t.Fatalf("signup: %v", err)
	}
	id, _ := s.Identity()
	if id.Name != "Grace" {
		t.Fatalf("expected backend-returned name, got=%q", id.Name)
	}
}
