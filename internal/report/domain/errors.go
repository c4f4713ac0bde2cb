package domain

import "errors"

// ErrNotFound is returned by the store when a record does not exist.
// The aggregation pipeline itself never returns it: missing references
// degrade to placeholder display values instead.
var ErrNotFound = errors.New("not found")
