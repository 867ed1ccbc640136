package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chordbook/internal/middleware"
	"chordbook/internal/models"
)

// SongService defines the interface for song reads and override writes
// required by the SongHandler.
type SongService interface {
	// List returns all master songs.
	List(ctx context.Context) ([]models.Song, error)
	// Read returns the effective view of a song for the given viewer;
	// viewerID is empty for anonymous requests.
	Read(ctx context.Context, songID, viewerID string) (*models.SongView, error)
	// Override applies a partial patch to the viewer's customization and
	// returns the resulting effective view.
	Override(ctx context.Context, songID, viewerID string, patch models.SongPatch) (*models.SongView, error)
}

// SongHandler handles HTTP requests for the song catalog and per-user
// overrides.
type SongHandler struct {
	SongService SongService
}

// List handles GET /songs: the public master catalog, unmerged.
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	songs, err := h.SongService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}
	writeJSON(w, http.StatusOK, songs)
}

// Get handles GET /songs/{id}. Authentication is optional: anonymous
// viewers and viewers without an override get the master fields with
// transposition 0.
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "id")
	viewerID := middleware.GetUserIDFromContext(r.Context())

	view, err := h.SongService.Read(r.Context(), songID, viewerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update handles PUT /songs/{id}. The body is a partial patch: only the
// fields present overwrite the viewer's override. Responds with the same
// effective view a subsequent GET would return.
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	songID := chi.URLParam(r, "id")
	viewerID := middleware.GetUserIDFromContext(r.Context())

	var patch models.SongPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	view, err := h.SongService.Override(r.Context(), songID, viewerID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
