package storage

import "errors"

// ErrUnavailable wraps infrastructure failures so callers can distinguish a
// broken store from a domain outcome such as "not found".
var ErrUnavailable = errors.New("storage: store unavailable")
