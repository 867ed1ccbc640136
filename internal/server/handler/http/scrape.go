package http

import (
	"context"
	"encoding/json"
	"net/http"

	"chordbook/internal/models"
)

// ScrapeService defines the ingestion operation required by the
// ScrapeHandler.
type ScrapeService interface {
	// Ingest fetches the page at url and commits it as a new master song.
	Ingest(ctx context.Context, url string) (*models.Song, error)
}

// ScrapeHandler handles HTTP requests that ingest external chord-sheet
// pages into the master catalog.
type ScrapeHandler struct {
	ScrapeService ScrapeService
}

// scrapeRequest represents the JSON payload for an ingestion request.
type scrapeRequest struct {
	URL string `json:"url"`
}

// Scrape handles POST /scrape.
// It expects a JSON body with a non-empty "url" field and responds 201 with
// the newly created master song. Fetch and parse failures map to 400 with
// the pipeline's diagnostic message; a duplicate (artist, title) maps
// to 409.
func (h *ScrapeHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "url is required"})
		return
	}

	song, err := h.ScrapeService.Ingest(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, song)
}
