package service

import "errors"

// Error kinds surfaced by the directory and ledger operations. Handlers map
// them to HTTP status codes with errors.Is; anything else is a store failure
// and stays generic toward the caller.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
