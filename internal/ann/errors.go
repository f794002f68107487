package ann

import "errors"

var (
	// ErrUnavailable marks transport-level failures: timeouts, refused
	// connections, DNS errors, and non-200 responses. Transient; retry policy
	// belongs to callers.
	ErrUnavailable = errors.New("source unavailable")

	// ErrMalformed marks responses that do not match the expected XML
	// structure. Permanent for that response; indicates an upstream contract
	// break.
	ErrMalformed = errors.New("source response malformed")
)
