package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles as the backend reports them.
const (
	RoleCandidate = "candidat"
	RoleRecruiter = "recruteur"
)

// Principal is the authenticated identity returned by the backend at
// login/registration. The client only reads and caches it.
type Principal struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsVerified bool   `json:"is_verified,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// FullName returns "First Last" trimmed of missing parts.
func (p *Principal) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// State is a snapshot of the session delivered to subscribers.
// ExpiresAt is parsed (unverified) from the access token's exp claim and is
// informational only: authentication is a token-presence check, expiry is
// discovered reactively when a request fails.
type State struct {
	Authenticated bool
	Principal     *Principal
	ExpiresAt     time.Time
}

// Store is the single source of truth for "who is logged in". It is
// constructed once at startup and passed to every consumer; tokens and the
// principal are mirrored to a session file on every change.
type Store struct {
	mu        sync.Mutex
	storage   *storage
	loaded    bool
	access    string
	refresh   string
	principal *Principal

	nextSub int
	subs    map[int]func(State)
}

// NewStore creates a store backed by the session file at path. The file is
// read lazily on first access.
func NewStore(path string) *Store {
	return &Store{
		storage: &storage{path: path},
		subs:    make(map[int]func(State)),
	}
}

// SetSession stores both tokens and the principal, persists them and
// notifies subscribers. Called only on the success paths of login/register.
func (s *Store) SetSession(access, refresh string, p *Principal) error {
	s.mu.Lock()
	s.ensureLoaded()
	s.access = access
	s.refresh = refresh
	s.principal = p
	err := s.persist()
	state := s.state()
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, state)
	return err
}

// SetAccessToken replaces the access token only, keeping the refresh token
// and principal. Used by the explicit token refresh operation.
func (s *Store) SetAccessToken(access string) error {
	s.mu.Lock()
	s.ensureLoaded()
	s.access = access
	err := s.persist()
	state := s.state()
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, state)
	return err
}

// Clear wipes tokens and principal from memory and durable storage and
// notifies subscribers. It never touches the backend.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.principal = nil
	s.loaded = true
	err := s.storage.clear()
	state := s.state()
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, state)
	return err
}

// Principal returns the cached principal, falling back to the session file
// when memory is empty. Returns nil when unauthenticated.
func (s *Store) Principal() *Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.principal
}

// AccessToken returns the current access token, or "" when absent.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.access
}

// RefreshToken returns the current refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.refresh
}

// IsAuthenticated reports whether an access token is present in durable
// storage. This is a presence check only, not a validity check.
func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.state()
}

// Subscribe registers a callback invoked immediately with the current state
// and again on every future change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	s.ensureLoaded()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	state := s.state()
	s.mu.Unlock()

	fn(state)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// ensureLoaded hydrates memory from the session file once. Callers hold mu.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	persisted, err := s.storage.load()
	if err != nil {
		// An unreadable session file is treated as an anonymous session.
		return
	}
	s.access = persisted.AccessToken
	s.refresh = persisted.RefreshToken
	s.principal = persisted.Principal
}

func (s *Store) persist() error {
	return s.storage.save(&persistedState{
		AccessToken:  s.access,
		RefreshToken: s.refresh,
		Principal:    s.principal,
	})
}

func (s *Store) state() State {
	return State{
		Authenticated: s.access != "",
		Principal:     s.principal,
		ExpiresAt:     tokenExpiry(s.access),
	}
}

func (s *Store) subscribers() []func(State) {
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

func notify(subs []func(State), state State) {
	for _, fn := range subs {
		fn(state)
	}
}

// tokenExpiry reads the exp claim without verifying the signature. The
// client has no signing key; the claim is display-only.
func tokenExpiry(access string) time.Time {
	if access == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
