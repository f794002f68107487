// Package catalog imports the anime catalog from encyclopedia report XML
// exports. Catalog rows are created here and consumed read-only by the rest
// of the application.
package catalog
