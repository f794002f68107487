package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"anishelf/internal/library"
	"anishelf/internal/logging"
)

// Store is the slice of library persistence the importer consumes.
type Store interface {
	UpsertShow(ctx context.Context, show *library.Show) error
}

// Import parses a reports XML document and upserts every catalog entry.
// Returns the number of imported rows. The import is repeatable: re-running
// it with the same report replaces rows in place.
func Import(ctx context.Context, store Store, r io.Reader, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	shows, err := ParseReport(r)
	if err != nil {
		return 0, err
	}

	for i := range shows {
		if err := store.UpsertShow(ctx, &shows[i]); err != nil {
			return i, fmt.Errorf("import show %d: %w", shows[i].AnimeID, err)
		}
	}

	logger.Info("catalog imported", logging.Int("shows", len(shows)))
	return len(shows), nil
}
