package app

import "errors"

var (
	// ErrUnauthorized indicates the operation needs an authenticated user.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden indicates the acting user may not perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput indicates a malformed or incomplete request payload.
	ErrInvalidInput = errors.New("invalid input")
)
