package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when a supplied identifier is not a well-formed UUID.
var ErrInvalidID = errors.New("invalid id")
