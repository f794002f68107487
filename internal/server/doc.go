// Package server exposes the library over a small HTTP JSON API: health,
// catalog lookup, release resolution, and collection management.
package server
