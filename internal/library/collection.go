package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// AddToCollection records an owned release. The release row must already exist;
// the foreign key on release_id enforces that.
func (s *Store) AddToCollection(ctx context.Context, animeID int64, releaseID string) (*CollectionEntry, error) {
	releaseID = strings.TrimSpace(releaseID)
	if releaseID == "" {
		return nil, errors.New("release id is required")
	}
	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx,
		`INSERT INTO collection_entries (anime_id, release_id, added_at) VALUES (?, ?, ?)`,
		animeID,
		releaseID,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("add to collection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &CollectionEntry{ID: id, AnimeID: animeID, ReleaseID: releaseID, AddedAt: now}, nil
}

// ListCollection returns all owned releases in the order they were added.
func (s *Store) ListCollection(ctx context.Context) ([]CollectionEntry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, anime_id, release_id, added_at FROM collection_entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}
	defer rows.Close()

	var entries []CollectionEntry
	for rows.Next() {
		var (
			entry    CollectionEntry
			addedRaw string
		)
		if err := rows.Scan(&entry.ID, &entry.AnimeID, &entry.ReleaseID, &addedRaw); err != nil {
			return nil, err
		}
		if added, err := parseTimeString(addedRaw); err == nil {
			entry.AddedAt = added
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RemoveFromCollection deletes owned entries for a release. Returns whether
// any row was removed.
func (s *Store) RemoveFromCollection(ctx context.Context, releaseID string) (bool, error) {
	res, err := s.execWithRetry(ctx,
		"DELETE FROM collection_entries WHERE release_id = ?", releaseID)
	if err != nil {
		return false, fmt.Errorf("remove from collection: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
