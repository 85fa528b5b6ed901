package models

import "errors"

// Error kinds shared across services and handlers. Services wrap these with
// context via fmt.Errorf("...: %w", ...) so handlers can map them to HTTP
// status codes with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
)
