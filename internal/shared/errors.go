package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTenantMissing occurs when a request lacks tenant context.
	ErrTenantMissing = errors.New("missing tenant context")
	// ErrActorMissing occurs when a request lacks an authenticated user.
	ErrActorMissing = errors.New("missing user context")
)
