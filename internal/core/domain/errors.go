package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrUnavailable  = errors.New("storage unavailable")
	ErrInvalidInput = errors.New("invalid input")
)

// ErrUserExists is returned when a user with the same email is already stored.
var ErrUserExists = fmt.Errorf("user with this email already exists: %w", ErrConflict)
