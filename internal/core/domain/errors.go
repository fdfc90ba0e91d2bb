package domain

import "errors"

// Error kinds shared by all services. Services wrap these with context via
// fmt.Errorf("%w: ...") and handlers map them to HTTP statuses with errors.Is.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)
