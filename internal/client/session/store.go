// Package session holds the client-side authentication state: the bearer
// token, the identity it belongs to, and the request lifecycle around
// refresh and logout. The store is the only writer of its own state; the
// gateway sees the token through a read-only accessor.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/logging"
)

const bearerPrefix = "Bearer "

// logoutTimeout bounds the fire-and-forget logout call.
const logoutTimeout = 5 * time.Second

// authAPI is the slice of the gateway the store needs.
type authAPI interface {
	Refresh(ctx context.Context) (*api.AuthPayload, error)
	Logout(ctx context.Context) error
}

// State is a read-only snapshot of the session. Authenticated is true
// exactly when Token is non-empty.
type State struct {
	Authenticated bool
	Token         string
	Identity      string
	Loading       bool
	Err           string
	ExpiresAt     time.Time
}

// Store owns the token string. Created empty; populated by Login or a
// silent refresh; cleared by Logout or a failed refresh.
type Store struct {
	mu        sync.RWMutex
	api       authAPI
	log       logging.Logger
	token     string
	identity  string
	loading   bool
	err       string
	expiresAt time.Time
}

// NewStore returns an anonymous session bound to the given gateway.
func NewStore(a authAPI, log logging.Logger) *Store {
	return &Store{api: a, log: log}
}

// Login synchronously marks the session authenticated. The stored token
// carries the bearer prefix exactly once regardless of the input form.
// Client-local, no failure mode.
func (s *Store) Login(accessToken, identity string) {
	raw := strings.TrimPrefix(accessToken, bearerPrefix)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = bearerPrefix + raw
	s.identity = identity
	s.err = ""
	s.applyClaims(raw)
}

// applyClaims fills identity and expiry from the token's unverified claims.
// The server already validated the token; the claims are display metadata
// here, never an authorization decision. Caller holds the lock.
func (s *Store) applyClaims(raw string) {
	subject, expires := tokenClaims(raw)
	if s.identity == "" {
		s.identity = subject
	}
	s.expiresAt = expires
}

// SilentRefresh exchanges the refresh cookie for a new access token. It
// reports success and never escapes an error: a failure records the message
// and leaves the session unauthenticated. Invoked once at application start
// and again by the gateway's 401 retry path; safe to call repeatedly.
func (s *Store) SilentRefresh(ctx context.Context) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	payload, err := s.api.Refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.log.Info(ctx, "silent refresh failed", "error", err)
		s.token = ""
		s.identity = ""
		s.expiresAt = time.Time{}
		s.err = err.Error()
		return false
	}

	s.token = bearerPrefix + payload.AccessToken
	s.identity = payload.User.Label()
	s.err = ""
	s.applyClaims(payload.AccessToken)
	return true
}

// Logout clears the local session immediately, then notifies the server in
// the background so a slow or failed network call can never leave the user
// stuck logged in. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.identity = ""
	s.expiresAt = time.Time{}
	s.err = ""
	s.loading = true
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
		defer cancel()

		err := s.api.Logout(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			// Local state stays cleared; the outcome is only recorded.
			s.log.Warn(ctx, "server logout failed", "error", err)
			s.err = err.Error()
		}
	}()
}

// ClearError resets the stored error without touching token or identity.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Token returns the current authorization header value, empty when
// anonymous. This is the accessor handed to the gateway.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Identity returns the display identity of the current user.
func (s *Store) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Snapshot returns a consistent copy of the session state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Authenticated: s.token != "",
		Token:         s.token,
		Identity:      s.identity,
		Loading:       s.loading,
		Err:           s.err,
		ExpiresAt:     s.expiresAt,
	}
}
