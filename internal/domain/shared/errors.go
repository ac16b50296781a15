package shared

import "errors"

// ErrConflict reports that a concurrent writer already stored a row with the
// same natural key.
var ErrConflict = errors.New("natural key conflict")
