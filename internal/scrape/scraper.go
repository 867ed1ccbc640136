package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chordbook/internal/apperr"
	"chordbook/internal/models"
)

// Some sites serve bots a different page, so the fetch identifies itself as
// a desktop browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// SongWriter defines the master-song operations required by the scraper.
type SongWriter interface {
	// ExistsByArtistTitle reports whether a master song with the exact
	// pair already exists.
	ExistsByArtistTitle(ctx context.Context, artist, title string) (bool, error)
	// Create atomically inserts a new master song. Returns
	// apperr.ErrConflict on an (artist, title) unique violation, or an
	// apperr.StorageError on any other failure.
	Create(ctx context.Context, song models.Song) error
}

// Scraper fetches an external chord-sheet page and commits it as a new
// master song. Each call is a single attempt — retry policy belongs to the
// caller.
type Scraper struct {
	client    *http.Client
	extractor Extractor
	songs     SongWriter
}

// NewScraper constructs a Scraper. timeout bounds the whole fetch,
// including connect and body read; a zero timeout defaults to 10 seconds.
func NewScraper(songs SongWriter, extractor Extractor, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		extractor: extractor,
		songs:     songs,
	}
}

// Ingest runs the pipeline for one URL: fetch, extract, dedupe, commit.
// On success the newly created master song is returned. Every failure mode
// has a distinct kind:
//
//   - apperr.NetworkError  — request failed or source returned an error status
//   - apperr.ParseError    — a structural anchor is missing from the page
//   - apperr.DuplicateError — a master song with the same (artist, title)
//     already exists; the existing record is never overwritten
//   - apperr.StorageError  — the insert failed; no partial row remains
func (s *Scraper) Ingest(ctx context.Context, url string) (*models.Song, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A URL the client cannot even build is a caller-recoverable
		// fetch failure, same as one it cannot reach.
		return nil, &apperr.NetworkError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &apperr.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperr.NetworkError{Status: resp.StatusCode}
	}

	fields, err := s.extractor.Extract(resp.Body)
	if err != nil {
		return nil, err
	}

	exists, err := s.songs.ExistsByArtistTitle(ctx, fields.Artist, fields.Title)
	if err != nil {
		return nil, &apperr.StorageError{Err: err}
	}
	if exists {
		return nil, &apperr.DuplicateError{Artist: fields.Artist, Title: fields.Title}
	}

	song := models.Song{
		ID:      uuid.New().String(),
		Artist:  fields.Artist,
		Title:   fields.Title,
		Content: fields.Content,
	}
	if err := s.songs.Create(ctx, song); err != nil {
		// Two ingestions can race past the existence check; the unique
		// constraint on (artist, title) settles it.
		if errors.Is(err, apperr.ErrConflict) {
			return nil, &apperr.DuplicateError{Artist: fields.Artist, Title: fields.Title}
		}
		return nil, err
	}
	return &song, nil
}
