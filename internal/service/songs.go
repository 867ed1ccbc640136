package service

import (
	"context"

	"chordbook/internal/models"
)

// SongRepository defines the master-song reads required by the song service.
type SongRepository interface {
	// List returns all master songs.
	List(ctx context.Context) ([]models.Song, error)
	// GetByID returns the master song with the given id, or
	// apperr.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Song, error)
}

// OverrideRepository defines the per-user override operations required by
// the song service.
type OverrideRepository interface {
	// GetByUserAndSong returns the override for the pair, or (nil, nil)
	// when none exists.
	GetByUserAndSong(ctx context.Context, userID, songID string) (*models.UserSong, error)
	// Upsert atomically creates or replaces the override for its
	// (user, song) pair.
	Upsert(ctx context.Context, us models.UserSong) error
}

// Merge produces the effective view of a master song for one viewer.
//
// With no override (anonymous viewer, or a viewer who never customized the
// song) the master fields are returned verbatim with transposition 0 and
// Customized false. With an override, Customized is true and each nil
// override field falls through to the master value (content) or the
// default 0 (transposition).
//
// Merge is pure: both the read path and the write path go through it, so a
// write followed by a read returns an identical view.
func Merge(master models.Song, override *models.UserSong) models.SongView {
	view := models.SongView{
		ID:      master.ID,
		Artist:  master.Artist,
		Title:   master.Title,
		Content: master.Content,
	}
	if override == nil {
		return view
	}
	view.Customized = true
	if override.Content != nil {
		view.Content = *override.Content
	}
	if override.Transposition != nil {
		view.Transposition = *override.Transposition
	}
	return view
}

// SongService implements song reads and per-user override writes over the
// master catalog.
type SongService struct {
	songs     SongRepository
	overrides OverrideRepository
}

// NewSongService constructs a SongService using the provided repositories.
func NewSongService(songs SongRepository, overrides OverrideRepository) *SongService {
	return &SongService{songs: songs, overrides: overrides}
}

// List returns all master songs, unmerged. Only the public catalog listing
// uses this.
func (s *SongService) List(ctx context.Context) ([]models.Song, error) {
	return s.songs.List(ctx)
}

// Read returns the effective view of a song for the given viewer. An empty
// viewerID means anonymous: master fields verbatim, transposition 0. A
// viewer without an override gets the same view as anonymous — identity
// alone does not imply customization. Read has no side effects.
func (s *SongService) Read(ctx context.Context, songID, viewerID string) (*models.SongView, error) {
	master, err := s.songs.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}

	var override *models.UserSong
	if viewerID != "" {
		override, err = s.overrides.GetByUserAndSong(ctx, viewerID, songID)
		if err != nil {
			return nil, err
		}
	}

	view := Merge(*master, override)
	return &view, nil
}

// Override applies a partial update to the viewer's customization of a song
// and returns the resulting effective view. The override row is created
// lazily on first write; fields absent from the patch keep their stored
// values, so a transposition-only patch never nulls out edited content.
// The upsert is a single statement, so no partial override is ever
// observable. The master song is never touched.
func (s *SongService) Override(ctx context.Context, songID, viewerID string, patch models.SongPatch) (*models.SongView, error) {
	if _, err := s.songs.GetByID(ctx, songID); err != nil {
		return nil, err
	}

	override, err := s.overrides.GetByUserAndSong(ctx, viewerID, songID)
	if err != nil {
		return nil, err
	}
	if override == nil {
		override = &models.UserSong{UserID: viewerID, SongID: songID}
	}

	if patch.Content != nil {
		override.Content = patch.Content
	}
	if patch.Transposition != nil {
		override.Transposition = patch.Transposition
	}

	if err := s.overrides.Upsert(ctx, *override); err != nil {
		return nil, err
	}

	// Re-read so the write path and the read path produce identical views.
	return s.Read(ctx, songID, viewerID)
}
