package search

import "errors"

// errTimeout unwinds a recursive search once the wall-clock deadline has
// passed. It never escapes this package: the iterative driver recovers it
// and returns the best depth that finished before the deadline.
var errTimeout = errors.New("search: time limit exceeded")
