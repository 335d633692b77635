package shell

import (
	"context"
	"fmt"
	"sync"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
)

type requestContextKey string

const (
	principalKey requestContextKey = "shell.principal"
	sessionKey   requestContextKey = "shell.session"
)

// Principal is the logged-in user a request is executed for.
type Principal struct {
	BorrowerID  core.BorrowerIDString
	Username    string
	Permissions core.Permissions
}

// IsLibrarian reports whether the principal may see and manage all loans.
func (p Principal) IsLibrarian() bool {
	return p.Permissions.Has(core.PermissionMarkReturned)
}

// WithPrincipal returns a context carrying the logged-in principal.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFrom returns the principal of the request, if somebody is logged in.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)

	return principal, ok
}

// RequireLogin returns the principal or ErrNotLoggedIn.
func RequireLogin(ctx context.Context) (Principal, error) {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return Principal{}, ErrNotLoggedIn
	}

	return principal, nil
}

// RequirePermission returns the principal if it holds the permission.
func RequirePermission(ctx context.Context, permission core.Permission) (Principal, error) {
	principal, err := RequireLogin(ctx)
	if err != nil {
		return Principal{}, err
	}

	if !principal.Permissions.Has(permission) {
		return Principal{}, fmt.Errorf("%w: %s", ErrPermissionDenied, permission)
	}

	return principal, nil
}

// Session is the per-visitor state that survives between requests, it is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	numVisits int
}

// NewSession creates a session with the given visit count.
func NewSession(numVisits int) *Session {
	return &Session{numVisits: numVisits}
}

// NumVisits returns the current visit count.
func (s *Session) NumVisits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.numVisits
}

// Visit increments the visit count and returns the count before this visit.
func (s *Session) Visit() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.numVisits
	s.numVisits++

	return before
}

// WithSession returns a context carrying the session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFrom returns the session of the request, if there is one.
func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)

	return session, ok && session != nil
}
