package releases

import "errors"

// ErrResolutionFailed is the terminal resolution error. It wraps the
// underlying source or store failure so callers can still inspect the cause
// with errors.Is. An anime with no known releases is NOT a failure; that case
// resolves to an empty list and a nil error.
var ErrResolutionFailed = errors.New("release resolution failed")
