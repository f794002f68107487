package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"anishelf/internal/library"
	"anishelf/internal/logging"
	"anishelf/internal/releases"
)

type healthResponse struct {
	Status string `json:"status"`
	Shows  int64  `json:"shows"`
}

type showResponse struct {
	AnimeID   int64  `json:"anime_id"`
	Title     string `json:"title"`
	Type      string `json:"type,omitempty"`
	Precision string `json:"precision,omitempty"`
}

type releaseListResponse struct {
	AnimeID  int64               `json:"anime_id"`
	Releases []releases.Resolved `json:"releases"`
}

type collectionEntryPayload struct {
	ID        int64  `json:"id"`
	AnimeID   int64  `json:"anime_id"`
	ReleaseID string `json:"release_id"`
	AddedAt   string `json:"added_at"`
}

type collectionListResponse struct {
	Entries []collectionEntryPayload `json:"entries"`
}

type collectionAddRequest struct {
	ReleaseID string `json:"release_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	shows, err := s.lib.CountShows(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Shows: shows})
}

// handleShows dispatches /api/shows/{id} and /api/shows/{id}/releases.
func (s *Server) handleShows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/shows/")
	idStr, tail, _ := strings.Cut(rest, "/")
	if idStr == "" {
		s.writeError(w, http.StatusNotFound, "show not found")
		return
	}
	animeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || animeID <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid anime id")
		return
	}
	switch tail {
	case "":
		s.handleShow(w, r, animeID)
	case "releases":
		s.handleShowReleases(w, r, animeID)
	default:
		s.writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request, animeID int64) {
	show, err := s.lib.GetShow(r.Context(), animeID)
	if err != nil {
		if errors.Is(err, library.ErrShowNotFound) {
			s.writeError(w, http.StatusNotFound, "show not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, showResponse{
		AnimeID:   show.AnimeID,
		Title:     show.Title,
		Type:      show.Type,
		Precision: show.Precision,
	})
}

func (s *Server) handleShowReleases(w http.ResponseWriter, r *http.Request, animeID int64) {
	if s.resolver == nil {
		s.writeError(w, http.StatusServiceUnavailable, "resolver unavailable")
		return
	}
	resolved, err := s.resolver.Resolve(r.Context(), animeID)
	if err != nil {
		s.log().Warn("release resolution failed",
			logging.Int64("anime_id", animeID),
			logging.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, releases.ErrResolutionFailed) {
			status = http.StatusBadGateway
		}
		s.writeError(w, status, err.Error())
		return
	}
	if resolved == nil {
		resolved = []releases.Resolved{}
	}
	s.writeJSON(w, http.StatusOK, releaseListResponse{AnimeID: animeID, Releases: resolved})
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleCollectionList(w, r)
	case http.MethodPost:
		s.handleCollectionAdd(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCollectionList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.lib.ListCollection(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := collectionListResponse{Entries: make([]collectionEntryPayload, 0, len(entries))}
	for _, entry := range entries {
		payload.Entries = append(payload.Entries, toCollectionPayload(entry))
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCollectionAdd(w http.ResponseWriter, r *http.Request) {
	var req collectionAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	releaseID := strings.TrimSpace(req.ReleaseID)
	if releaseID == "" {
		s.writeError(w, http.StatusBadRequest, "release_id is required")
		return
	}

	release, err := s.lib.GetRelease(r.Context(), releaseID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if release == nil {
		s.writeError(w, http.StatusNotFound, "release not known; resolve its show first")
		return
	}

	entry, err := s.lib.AddToCollection(r.Context(), release.AnimeID, releaseID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, toCollectionPayload(*entry))
}

func (s *Server) handleCollectionEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	releaseID := strings.TrimPrefix(r.URL.Path, "/api/collection/")
	if releaseID == "" || strings.Contains(releaseID, "/") {
		s.writeError(w, http.StatusNotFound, "collection entry not found")
		return
	}
	removed, err := s.lib.RemoveFromCollection(r.Context(), releaseID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		s.writeError(w, http.StatusNotFound, "collection entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCollectionPayload(entry library.CollectionEntry) collectionEntryPayload {
	return collectionEntryPayload{
		ID:        entry.ID,
		AnimeID:   entry.AnimeID,
		ReleaseID: entry.ReleaseID,
		AddedAt:   entry.AddedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
