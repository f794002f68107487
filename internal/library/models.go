package library

import "time"

// Show is one catalog entry imported from the encyclopedia report.
// Rows are created at import time and treated as immutable afterwards.
type Show struct {
	AnimeID   int64
	Title     string
	Type      string
	Precision string
	CreatedAt time.Time
}

// Release is one physical or digital edition of a show. The classification
// fields (Format, Edition) are derived once at ingestion and never recomputed.
type Release struct {
	ID          int64
	ReleaseID   string
	AnimeID     int64
	Title       string
	Format      string
	Edition     string
	ReleaseDate string
	CreatedAt   time.Time
}

// CollectionEntry records one owned release.
type CollectionEntry struct {
	ID        int64
	AnimeID   int64
	ReleaseID string
	AddedAt   time.Time
}
