package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"anishelf/internal/library"
	"anishelf/internal/releases"
	"anishelf/internal/testsupport"
)

type stubResolver struct {
	out []releases.Resolved
	err error
}

func (s *stubResolver) Resolve(_ context.Context, _ int64) ([]releases.Resolved, error) {
	return s.out, s.err
}

func newTestServer(t *testing.T, resolver Resolver) (*httptest.Server, *library.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	srv, err := New(cfg, store, resolver, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return ts, store
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts, store := newTestServer(t, &stubResolver{})
	testsupport.SeedShow(t, store, 7, "Test Show")

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Status string `json:"status"`
		Shows  int64  `json:"shows"`
	}
	decodeBody(t, resp, &payload)
	if payload.Status != "ok" || payload.Shows != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGetShow(t *testing.T) {
	ts, store := newTestServer(t, &stubResolver{})
	testsupport.SeedShow(t, store, 42, "Known Show")

	resp, err := http.Get(ts.URL + "/api/shows/42")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		AnimeID int64  `json:"anime_id"`
		Title   string `json:"title"`
	}
	decodeBody(t, resp, &payload)
	if payload.AnimeID != 42 || payload.Title != "Known Show" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestGetShow_NotFound(t *testing.T) {
	ts, _ := newTestServer(t, &stubResolver{})

	resp, err := http.Get(ts.URL + "/api/shows/999")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetShow_InvalidID(t *testing.T) {
	ts, _ := newTestServer(t, &stubResolver{})

	resp, err := http.Get(ts.URL + "/api/shows/abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestShowReleases(t *testing.T) {
	resolver := &stubResolver{out: []releases.Resolved{
		{ReleaseID: "101", AnimeID: 42, Title: "Show (BD)", Format: "BD", Edition: "Standard"},
	}}
	ts, _ := newTestServer(t, resolver)

	resp, err := http.Get(ts.URL + "/api/shows/42/releases")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		AnimeID  int64               `json:"anime_id"`
		Releases []releases.Resolved `json:"releases"`
	}
	decodeBody(t, resp, &payload)
	if payload.AnimeID != 42 || len(payload.Releases) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Releases[0].ReleaseID != "101" {
		t.Fatalf("release_id = %q", payload.Releases[0].ReleaseID)
	}
}

func TestShowReleases_EmptyIsNotAnError(t *testing.T) {
	ts, _ := newTestServer(t, &stubResolver{})

	resp, err := http.Get(ts.URL + "/api/shows/42/releases")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Releases []releases.Resolved `json:"releases"`
	}
	decodeBody(t, resp, &payload)
	if payload.Releases == nil {
		t.Fatal("expected empty list, got null")
	}
	if len(payload.Releases) != 0 {
		t.Fatalf("expected 0 releases, got %d", len(payload.Releases))
	}
}

func TestShowReleases_ResolutionFailure(t *testing.T) {
	resolver := &stubResolver{
		err: fmt.Errorf("%w: fetch releases for anime 42: boom", releases.ErrResolutionFailed),
	}
	ts, _ := newTestServer(t, resolver)

	resp, err := http.Get(ts.URL + "/api/shows/42/releases")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	var payload struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &payload)
	if payload.Error == "" {
		t.Fatal("expected error body")
	}
}

func TestCollectionLifecycle(t *testing.T) {
	ts, store := newTestServer(t, &stubResolver{})
	testsupport.SeedShow(t, store, 42, "Known Show")
	release := &library.Release{ReleaseID: "101", AnimeID: 42, Title: "Show (BD)", Format: "BD", Edition: "Standard"}
	if err := store.InsertRelease(context.Background(), release); err != nil {
		t.Fatalf("InsertRelease: %v", err)
	}

	body := bytes.NewBufferString(`{"release_id": "101"}`)
	resp, err := http.Post(ts.URL+"/api/collection", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", resp.StatusCode)
	}
	var added struct {
		AnimeID   int64  `json:"anime_id"`
		ReleaseID string `json:"release_id"`
	}
	decodeBody(t, resp, &added)
	if added.AnimeID != 42 || added.ReleaseID != "101" {
		t.Fatalf("unexpected entry: %+v", added)
	}

	resp, err = http.Get(ts.URL + "/api/collection")
	if err != nil {
		t.Fatal(err)
	}
	var listed struct {
		Entries []struct {
			ReleaseID string `json:"release_id"`
		} `json:"entries"`
	}
	decodeBody(t, resp, &listed)
	if len(listed.Entries) != 1 || listed.Entries[0].ReleaseID != "101" {
		t.Fatalf("unexpected list: %+v", listed)
	}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/collection/101", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCollectionAdd_UnknownRelease(t *testing.T) {
	ts, _ := newTestServer(t, &stubResolver{})

	body := bytes.NewBufferString(`{"release_id": "nope"}`)
	resp, err := http.Post(ts.URL+"/api/collection", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCollectionAdd_MissingReleaseID(t *testing.T) {
	ts, _ := newTestServer(t, &stubResolver{})

	body := bytes.NewBufferString(`{}`)
	resp, err := http.Post(ts.URL+"/api/collection", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStartAndShutdown(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	srv, err := New(cfg, store, &stubResolver{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
