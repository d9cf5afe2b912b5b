package database

import "errors"

// ErrNotFound is returned by lookups when no row matches. Callers that only
// need a flag check errors.Is; callers that need detail unwrap the rest.
var ErrNotFound = errors.New("record not found")
