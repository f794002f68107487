package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const showColumns = "anime_id, title, type, precision, created_at"

// UpsertShow inserts a catalog row, replacing any prior import of the same ID.
func (s *Store) UpsertShow(ctx context.Context, show *Show) error {
	if show == nil {
		return errors.New("show is nil")
	}
	if show.AnimeID <= 0 {
		return errors.New("anime id must be positive")
	}
	now := time.Now().UTC()
	_, err := s.execWithRetry(ctx,
		`INSERT INTO anime_shows (anime_id, title, type, precision, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(anime_id) DO UPDATE SET title = excluded.title,
             type = excluded.type, precision = excluded.precision`,
		show.AnimeID,
		show.Title,
		show.Type,
		show.Precision,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert show: %w", err)
	}
	return nil
}

// GetShow fetches a catalog entry by anime ID. Returns ErrShowNotFound when
// the ID was never imported.
func (s *Store) GetShow(ctx context.Context, animeID int64) (*Show, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+showColumns+" FROM anime_shows WHERE anime_id = ?", animeID)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrShowNotFound, animeID)
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	return &show, nil
}

// CountShows returns the number of imported catalog entries.
func (s *Store) CountShows(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM anime_shows")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count shows: %w", err)
	}
	return count, nil
}

func scanShow(scanner interface{ Scan(dest ...any) error }) (Show, error) {
	var (
		show       Show
		createdRaw sql.NullString
	)
	if err := scanner.Scan(
		&show.AnimeID,
		&show.Title,
		&show.Type,
		&show.Precision,
		&createdRaw,
	); err != nil {
		return Show{}, err
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		show.CreatedAt = created
	}
	return show, nil
}
