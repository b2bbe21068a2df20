package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")

	// Link errors
	ErrLinkNotFound = errors.New("link not found")

	// Share errors
	ErrShareNotFound  = errors.New("share not found")
	ErrDuplicateShare = errors.New("link already shared with this user")
	ErrSelfShare      = errors.New("cannot share a link with its owner")

	// Listing errors
	ErrInvalidMode = errors.New("invalid list mode")

	// Identifier errors
	ErrIDExhausted = errors.New("could not allocate a unique id")
)
