package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned by every operation of a store that could not be
// opened. The server keeps running and reports these as storage errors.
var ErrUnavailable = errors.New("store unavailable")
