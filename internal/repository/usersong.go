package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chordbook/internal/models"
)

// PostgresUserSongRepository implements override persistence against a
// PostgreSQL database. An override row is logically owned by its
// (user_id, song_id) key; the primary key on that pair guarantees at most
// one row survives concurrent upserts.
type PostgresUserSongRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserSongRepository creates a new PostgresUserSongRepository
// using the provided *sql.DB.
func NewPostgresUserSongRepository(db *sql.DB) *PostgresUserSongRepository {
	return &PostgresUserSongRepository{DB: db}
}

// GetByUserAndSong retrieves the override row for the given (user, song)
// pair. Returns (nil, nil) when no override exists — absence is a normal
// state, not an error.
func (r *PostgresUserSongRepository) GetByUserAndSong(ctx context.Context, userID, songID string) (*models.UserSong, error) {
	var us models.UserSong
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, song_id, content, transposition FROM user_songs
		WHERE user_id = $1 AND song_id = $2
	`, userID, songID).Scan(&us.UserID, &us.SongID, &us.Content, &us.Transposition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get override: %w", err)
	}
	return &us, nil
}

// Upsert inserts the override row, or replaces its fields on conflict with
// the (user_id, song_id) primary key. The single statement makes the write
// atomic: both fields land together, and two racing upserts for the same
// pair serialize on the constraint with last-committed-wins semantics.
func (r *PostgresUserSongRepository) Upsert(ctx context.Context, us models.UserSong) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_songs (user_id, song_id, content, transposition)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, song_id) DO UPDATE SET
			content = EXCLUDED.content,
			transposition = EXCLUDED.transposition
	`, us.UserID, us.SongID, us.Content, us.Transposition)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}
