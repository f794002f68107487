package releases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"anishelf/internal/ann"
	"anishelf/internal/library"
	"anishelf/internal/logging"
)

// Store is the slice of library persistence the resolver consumes.
type Store interface {
	ListReleases(ctx context.Context, animeID int64) ([]library.Release, error)
	InsertRelease(ctx context.Context, release *library.Release) error
}

// Resolved is the caller-facing release view. The display fields (SourceLink,
// CoverImageURL) are recomputed from the release ID on every read, so the
// shape is identical whether the data came from the cache or a fresh fetch.
type Resolved struct {
	ReleaseID     string `json:"release_id"`
	AnimeID       int64  `json:"anime_id"`
	Title         string `json:"title"`
	Format        string `json:"format"`
	Edition       string `json:"edition"`
	ReleaseDate   string `json:"release_date,omitempty"`
	CoverImageURL string `json:"cover_image_url"`
	SourceLink    string `json:"source_link"`
}

// Resolver produces the release list for an anime, serving from the store
// when possible and falling back to the encyclopedia API exactly once per
// anime ID.
type Resolver struct {
	store  Store
	source ann.Fetcher
	links  ann.Links
	logger *slog.Logger
}

// NewResolver wires a resolver from its dependencies.
func NewResolver(store Store, source ann.Fetcher, links ann.Links, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{store: store, source: source, links: links, logger: logger}
}

// Resolve returns the releases for one anime in source order.
//
// A populated store answers directly; the source client is not invoked again
// for that anime. On a miss the raw releases are fetched, classified, and
// persisted. Duplicate rows written by a concurrent resolution of the same
// anime are swallowed; the store's uniqueness constraint on release_id is the
// only serialization between racing callers, and each caller still returns
// its own complete fetched list. An empty result is valid and distinct from
// failure: no releases yields an empty slice and a nil error.
func (r *Resolver) Resolve(ctx context.Context, animeID int64) ([]Resolved, error) {
	stored, err := r.store.ListReleases(ctx, animeID)
	if err != nil {
		return nil, fmt.Errorf("%w: read store for anime %d: %w", ErrResolutionFailed, animeID, err)
	}
	if len(stored) > 0 {
		r.logger.Debug("release cache hit",
			logging.Int64("anime_id", animeID),
			logging.Int("count", len(stored)))
		return r.decorate(stored), nil
	}

	raw, err := r.source.FetchReleases(ctx, animeID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch releases for anime %d: %w", ErrResolutionFailed, animeID, err)
	}

	records := make([]library.Release, 0, len(raw))
	for _, entry := range raw {
		format, edition := ClassifyTitle(entry.Title)
		record := library.Release{
			ReleaseID:   entry.ID,
			AnimeID:     animeID,
			Title:       entry.Title,
			Format:      format,
			Edition:     edition,
			ReleaseDate: entry.Date,
		}
		if err := r.store.InsertRelease(ctx, &record); err != nil {
			if errors.Is(err, library.ErrDuplicateRelease) {
				r.logger.Debug("duplicate release ignored",
					logging.Int64("anime_id", animeID),
					logging.String("release_id", entry.ID))
			} else {
				return nil, fmt.Errorf("%w: persist release %s: %w", ErrResolutionFailed, entry.ID, err)
			}
		}
		records = append(records, record)
	}

	r.logger.Info("releases resolved from source",
		logging.Int64("anime_id", animeID),
		logging.Int("count", len(records)))
	return r.decorate(records), nil
}

func (r *Resolver) decorate(records []library.Release) []Resolved {
	resolved := make([]Resolved, 0, len(records))
	for _, record := range records {
		resolved = append(resolved, Resolved{
			ReleaseID:     record.ReleaseID,
			AnimeID:       record.AnimeID,
			Title:         record.Title,
			Format:        record.Format,
			Edition:       record.Edition,
			ReleaseDate:   record.ReleaseDate,
			CoverImageURL: r.links.CoverImage(record.ReleaseID),
			SourceLink:    r.links.ReleasePage(record.ReleaseID),
		})
	}
	return resolved
}
