package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const releaseColumns = "id, release_id, anime_id, title, format, edition, release_date, created_at"

// HasReleases reports whether at least one release row exists for the anime.
func (s *Store) HasReleases(ctx context.Context, animeID int64) (bool, error) {
	ctx = ensureContext(ctx)
	var exists int
	row := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM anime_releases WHERE anime_id = ?)", animeID)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check releases: %w", err)
	}
	return exists == 1, nil
}

// ListReleases returns the persisted releases for an anime in insertion order.
func (s *Store) ListReleases(ctx context.Context, animeID int64) ([]Release, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+releaseColumns+" FROM anime_releases WHERE anime_id = ? ORDER BY id", animeID)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var releases []Release
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}
	return releases, rows.Err()
}

// InsertRelease persists one release. A second insert for a release_id that is
// already present leaves the store unchanged and returns ErrDuplicateRelease;
// the uniqueness constraint on release_id is the only serialization point
// between concurrent ingests.
func (s *Store) InsertRelease(ctx context.Context, release *Release) error {
	if release == nil {
		return errors.New("release is nil")
	}
	if release.ReleaseID == "" {
		return errors.New("release id is required")
	}
	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx,
		`INSERT INTO anime_releases (release_id, anime_id, title, format, edition, release_date, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(release_id) DO NOTHING`,
		release.ReleaseID,
		release.AnimeID,
		release.Title,
		release.Format,
		release.Edition,
		nullableString(release.ReleaseDate),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRelease, release.ReleaseID)
	}
	release.CreatedAt = now

	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT id FROM anime_releases WHERE release_id = ?", release.ReleaseID)
	if err := row.Scan(&release.ID); err != nil {
		return fmt.Errorf("read release row id: %w", err)
	}
	return nil
}

// GetRelease fetches one release by its source release_id.
func (s *Store) GetRelease(ctx context.Context, releaseID string) (*Release, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+releaseColumns+" FROM anime_releases WHERE release_id = ?", releaseID)
	release, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get release: %w", err)
	}
	return &release, nil
}

func scanRelease(scanner interface{ Scan(dest ...any) error }) (Release, error) {
	var (
		release     Release
		releaseDate sql.NullString
		createdRaw  sql.NullString
	)
	if err := scanner.Scan(
		&release.ID,
		&release.ReleaseID,
		&release.AnimeID,
		&release.Title,
		&release.Format,
		&release.Edition,
		&releaseDate,
		&createdRaw,
	); err != nil {
		return Release{}, err
	}
	release.ReleaseDate = releaseDate.String
	if created, err := parseTimeString(createdRaw.String); err == nil {
		release.CreatedAt = created
	}
	return release, nil
}
