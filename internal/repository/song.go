package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chordbook/internal/apperr"
	"chordbook/internal/models"
)

// PostgresSongRepository implements master-song persistence against a
// PostgreSQL database. Master songs are insert-only: no update or delete
// statements exist here.
type PostgresSongRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSongRepository creates a new PostgresSongRepository using the
// provided *sql.DB.
func NewPostgresSongRepository(db *sql.DB) *PostgresSongRepository {
	return &PostgresSongRepository{DB: db}
}

// List fetches all master songs.
//
//	ctx: context for cancellation and deadlines
//
// Returns a slice of models.Song or an error if the query or scanning fails.
func (r *PostgresSongRepository) List(ctx context.Context) ([]models.Song, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, artist, title, content FROM songs ORDER BY artist, title
	`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Artist, &song.Title, &song.Content); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	return songs, nil
}

// GetByID retrieves a single master song by its identifier.
// Returns apperr.ErrNotFound if the song does not exist.
func (r *PostgresSongRepository) GetByID(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, artist, title, content FROM songs WHERE id = $1
	`, id).Scan(&song.ID, &song.Artist, &song.Title, &song.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("song %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}
	return &song, nil
}

// ExistsByArtistTitle checks whether a master song with the exact
// (artist, title) pair already exists. The compare is case-sensitive, as
// produced by ingestion.
func (r *PostgresSongRepository) ExistsByArtistTitle(ctx context.Context, artist, title string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM songs WHERE artist = $1 AND title = $2)
	`, artist, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check song exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new master song. The single INSERT is atomic: a failure
// leaves no partial row behind. A unique violation on (artist, title) —
// possible when two ingestions race past the duplicate check — is returned
// as apperr.ErrConflict; any other failure is wrapped in apperr.StorageError.
func (r *PostgresSongRepository) Create(ctx context.Context, song models.Song) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO songs (id, artist, title, content) VALUES ($1, $2, $3, $4)
	`, song.ID, song.Artist, song.Title, song.Content)
	if isUniqueViolation(err) {
		return fmt.Errorf("song %q by %s: %w", song.Title, song.Artist, apperr.ErrConflict)
	}
	if err != nil {
		return &apperr.StorageError{Err: fmt.Errorf("create song: %w", err)}
	}
	return nil
}
