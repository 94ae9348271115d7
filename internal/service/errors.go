package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidState is returned when a lifecycle transition is not allowed
	// from the record's current state
	ErrInvalidState = errors.New("invalid state for requested transition")

	// ErrClientNotApproved is returned when an order references a client
	// that has not been approved
	ErrClientNotApproved = errors.New("client is not approved for orders")

	// ErrFlavorNotFound is returned when an order item references an unknown flavor
	ErrFlavorNotFound = errors.New("flavor not found")

	// ErrFlavorInactive is returned when an order item references a retired flavor
	ErrFlavorInactive = errors.New("flavor is no longer sold")

	// ErrUsernameTaken is returned when registering with an existing username
	ErrUsernameTaken = errors.New("username already taken")
)
