package grid

import "errors"

// ErrInvalidDimension indicates a grid smaller than 3x3, which has no
// interior cell to relax.
var ErrInvalidDimension = errors.New("grid: dimensions must be at least 3x3")
