// Package releases implements release metadata resolution: the title
// classifier that turns free-text release titles into structured edition and
// format fields, and the resolver that orchestrates cache lookups, source
// fetches, classification, and persistence.
//
// Classification happens exactly once, at ingestion. Persisted rows are never
// reclassified, so displayed data stays stable even if the heuristic changes
// in a later version.
package releases
