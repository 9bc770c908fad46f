package pathfind

import "errors"

var (
	ErrNegativeDepth = errors.New("max depth must be non-negative")
	ErrNilNetwork    = errors.New("network is nil")
)
