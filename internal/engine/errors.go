package engine

import "errors"

// ErrNotFound indicates a bury target that does not exist.
var ErrNotFound = errors.New("no such file or directory")
