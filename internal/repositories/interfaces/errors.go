package interfaces

import "errors"

// ErrNotFound is wrapped by repository lookups that match no document.
var ErrNotFound = errors.New("not found")
