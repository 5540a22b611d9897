package domain

import "errors"

// ErrNotFound is returned when a referenced record, assignment or employee
// does not exist. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("record not found")
