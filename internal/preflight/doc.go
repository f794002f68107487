// Package preflight runs environment checks before the daemon or CLI
// touches the library: directory permissions, metadata source
// reachability, and database integrity.
package preflight
