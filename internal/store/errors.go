package store

import "errors"

var (
	// ErrDuplicateUsername indicates another user already holds the username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrUserNotFound indicates no user with the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrPortfolioNotFound indicates no portfolio with the given id.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrLastAdmin indicates the delete would remove the only administrator.
	ErrLastAdmin = errors.New("cannot delete the last administrator")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAuthorNotFound indicates the portfolio author id resolves to no user.
	ErrAuthorNotFound = errors.New("author not found")
	// ErrInvalidScore indicates a rating score outside the 1..5 range.
	ErrInvalidScore = errors.New("rating score must be between 1 and 5")
)
