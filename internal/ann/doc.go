// Package ann provides the minimal AnimeNewsNetwork encyclopedia client used
// for release resolution.
//
// It fetches the XML release list for a single anime ID and parses it into raw
// release entries. The client never caches and never retries; cache-or-fetch
// decisions live in the resolver. Errors carry the ErrUnavailable or
// ErrMalformed sentinel so callers can distinguish transient transport
// failures from upstream contract breaks. Options allow tests to supply custom
// HTTP clients without modifying production code.
package ann
