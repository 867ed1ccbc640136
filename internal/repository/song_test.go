package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"chordbook/internal/apperr"
	"chordbook/internal/models"
)

func setupSongMock(t *testing.T) (*PostgresSongRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresSongRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestSongList(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist, title, content FROM songs`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "artist", "title", "content"}).
			AddRow("s1", "Artist A", "Song A", "C G Am F").
			AddRow("s2", "Artist B", "Song B", "Em D"))

	songs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[0].Artist != "Artist A" || songs[1].Title != "Song B" {
		t.Errorf("unexpected songs: %+v", songs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSongGetByID_Found(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist, title, content FROM songs WHERE id = $1`)).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "artist", "title", "content"}).
			AddRow("s1", "Artist A", "Song A", "C G Am F"))

	song, err := repo.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Title != "Song A" {
		t.Errorf("unexpected song: %+v", song)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSongGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, artist, title, content FROM songs WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "artist", "title", "content"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestExistsByArtistTitle(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM songs WHERE artist = $1 AND title = $2)`)).
		WithArgs("Artist A", "Song A").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByArtistTitle(context.Background(), "Artist A", "Song A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Errorf("expected song to exist, got false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSongCreate_Success(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	song := models.Song{ID: "s1", Artist: "Artist A", Title: "Song A", Content: "C G Am F"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO songs (id, artist, title, content) VALUES ($1, $2, $3, $4)`)).
		WithArgs(song.ID, song.Artist, song.Title, song.Content).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), song); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSongCreate_UniqueViolation(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	song := models.Song{ID: "s2", Artist: "Artist A", Title: "Song A", Content: "C"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO songs`)).
		WithArgs(song.ID, song.Artist, song.Title, song.Content).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), song)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSongCreate_StorageError(t *testing.T) {
	repo, mock, cleanup := setupSongMock(t)
	defer cleanup()

	song := models.Song{ID: "s3", Artist: "Artist B", Title: "Song B", Content: "Em"}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO songs`)).
		WithArgs(song.ID, song.Artist, song.Title, song.Content).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), song)
	var storageErr *apperr.StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("expected StorageError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
