package repositories

import "errors"

// ErrNotFound is wrapped by every repository when the requested record does
// not exist, so callers can classify with errors.Is instead of matching
// message strings.
var ErrNotFound = errors.New("not found")
