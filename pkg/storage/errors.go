package storage

import "errors"

// ErrNotFound is returned when a member or engagement does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a transition creates an entity that is already stored.
var ErrAlreadyExists = errors.New("already exists")

// ErrConflict is returned when an entity changed since it was read, i.e. its stored
// version no longer matches the version a transition was computed against.
var ErrConflict = errors.New("version conflict")
