package library

import "errors"

// ErrDuplicateRelease reports an insert for a release_id that already exists.
// Callers racing to ingest the same releases treat this as a non-fatal outcome.
var ErrDuplicateRelease = errors.New("duplicate release")

// ErrShowNotFound reports a catalog lookup for an unknown anime ID.
var ErrShowNotFound = errors.New("show not found")
