package testsupport

import (
	"context"
	"testing"

	"anishelf/internal/config"
	"anishelf/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedShow imports one catalog row for tests.
func SeedShow(t testing.TB, store *library.Store, animeID int64, title string) {
	t.Helper()

	show := &library.Show{AnimeID: animeID, Title: title, Type: "TV", Precision: "TV"}
	if err := store.UpsertShow(context.Background(), show); err != nil {
		t.Fatalf("store.UpsertShow: %v", err)
	}
}
