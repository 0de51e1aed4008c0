package wardrobe

import "errors"

// ErrNotFound is returned when a staging token or item identifier doesn't
// exist (or already reached a terminal state, which removes the record).
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a confirmation exhausted its retry budget
// without finding a free identifier.
var ErrConflict = errors.New("identifier conflict not resolved")
