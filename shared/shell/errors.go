package shell

import "errors"

var (
	// ErrNotLoggedIn is returned when a handler requires a principal and the request has none.
	ErrNotLoggedIn = errors.New("login required")

	// ErrPermissionDenied is returned when the principal lacks the permission a handler requires.
	ErrPermissionDenied = errors.New("permission denied")
)
