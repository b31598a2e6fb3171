package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSetSessionPersistsToFile(t *testing.T) {
	path := testPath(t)
	store := NewStore(path)

	principal := &Principal{ID: 1, Email: "a@b.fr", Role: RoleCandidate}
	if err := store.SetSession("t1", "r1", principal); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading session file: %v", err)
	}

	var persisted map[string]json.RawMessage
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("parsing session file: %v", err)
	}
	for _, key := range []string{"access_token", "refresh_token", "principal"} {
		if _, ok := persisted[key]; !ok {
			t.Fatalf("expected %q key in session file, got %s", key, data)
		}
	}

	// A fresh store on the same path must see the same session.
	reloaded := NewStore(path)
	if got := reloaded.AccessToken(); got != "t1" {
		t.Fatalf("expected access token t1, got %q", got)
	}
	if got := reloaded.RefreshToken(); got != "r1" {
		t.Fatalf("expected refresh token r1, got %q", got)
	}
	if !reloaded.IsAuthenticated() {
		t.Fatalf("expected reloaded store to be authenticated")
	}
	p := reloaded.Principal()
	if p == nil || p.Email != "a@b.fr" || p.Role != RoleCandidate {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestClearRemovesSessionFile(t *testing.T) {
	path := testPath(t)
	store := NewStore(path)

	if err := store.SetSession("t1", "r1", &Principal{ID: 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if store.IsAuthenticated() {
		t.Fatalf("expected store to be unauthenticated after Clear")
	}
	if store.Principal() != nil {
		t.Fatalf("expected nil principal after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file to be removed, stat err: %v", err)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(testPath(t))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestIsAuthenticatedIsPresenceOnly(t *testing.T) {
	store := NewStore(testPath(t))

	// Not a JWT at all; presence of the token is still enough.
	if err := store.SetSession("opaque-token", "", nil); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated with a malformed token present")
	}
	if got := store.State().ExpiresAt; !got.IsZero() {
		t.Fatalf("expected zero expiry for a malformed token, got %v", got)
	}
}

func TestSetAccessTokenKeepsRefreshAndPrincipal(t *testing.T) {
	store := NewStore(testPath(t))

	principal := &Principal{ID: 2, Email: "r@b.fr", Role: RoleRecruiter}
	if err := store.SetSession("t1", "r1", principal); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := store.SetAccessToken("t2"); err != nil {
		t.Fatalf("SetAccessToken: %v", err)
	}

	if got := store.AccessToken(); got != "t2" {
		t.Fatalf("expected access token t2, got %q", got)
	}
	if got := store.RefreshToken(); got != "r1" {
		t.Fatalf("expected refresh token to survive, got %q", got)
	}
	if p := store.Principal(); p == nil || p.ID != 2 {
		t.Fatalf("expected principal to survive, got %+v", p)
	}
}

func TestStateExposesTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	store := NewStore(testPath(t))
	if err := store.SetSession(token, "r1", nil); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	if got := store.State().ExpiresAt; !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, got)
	}
}

func TestSubscribeNotifiesOnEveryChange(t *testing.T) {
	store := NewStore(testPath(t))

	var states []State
	unsubscribe := store.Subscribe(func(s State) {
		states = append(states, s)
	})

	if len(states) != 1 || states[0].Authenticated {
		t.Fatalf("expected an immediate unauthenticated snapshot, got %+v", states)
	}

	if err := store.SetSession("t1", "r1", &Principal{Email: "a@b.fr"}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}
	if !states[1].Authenticated || states[1].Principal == nil {
		t.Fatalf("expected authenticated state with principal, got %+v", states[1])
	}

	unsubscribe()
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected no notification after unsubscribe, got %d", len(states))
	}
}

func TestFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Amina", "Diallo", "Amina Diallo"},
		{"Amina", "", "Amina"},
		{"", "Diallo", "Diallo"},
	}
	for _, tc := range cases {
		p := &Principal{FirstName: tc.first, LastName: tc.last}
		if got := p.FullName(); got != tc.want {
			t.Fatalf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}
