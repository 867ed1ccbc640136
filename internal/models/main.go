// Package models defines the core data structures for users, songs and
// per-user song overrides.
package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name chosen by the user. Globally unique,
	// compared case-sensitively.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the user's password. The raw
	// password is never stored.
	PasswordHash []byte `json:"-"`
}

// Song is a master song record: the canonical, shared baseline.
// Content holds the chord/lyric markup and is treated as an opaque blob —
// it is never parsed or validated for structure. Master songs are created
// only by the ingestion pipeline and never mutated afterwards; per-user
// edits live in UserSong rows.
type Song struct {
	// ID is the unique identifier for the song.
	ID string `json:"id"`
	// Artist is the performing artist, as extracted by ingestion.
	Artist string `json:"artist"`
	// Title is the song title, as extracted by ingestion.
	Title string `json:"title"`
	// Content is the chord/lyric markup.
	Content string `json:"content"`
}

// UserSong is a per-(user, song) customization layered over a master song.
// At most one row exists per pair. A nil field means "no personalization":
// the master value (or the default transposition 0) applies.
type UserSong struct {
	// UserID references the owning user.
	UserID string
	// SongID references the master song being customized.
	SongID string
	// Content is the user's edited markup, or nil to fall through to the
	// master content.
	Content *string
	// Transposition is the user's semitone shift, or nil for the default 0.
	Transposition *int
}

// SongPatch is a partial update to a UserSong. A nil field was absent from
// the request and must leave the stored value untouched.
type SongPatch struct {
	Content       *string `json:"content"`
	Transposition *int    `json:"transposition"`
}

// SongView is the effective song representation returned to a viewer after
// merging the master record with the viewer's override, if any. It is
// derived, never persisted.
type SongView struct {
	ID      string `json:"id"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Transposition defaults to 0 for anonymous viewers and for viewers
	// without an override.
	Transposition int `json:"transposition"`
	// Customized is true iff an override row exists for this viewer,
	// regardless of whether its fields are set.
	Customized bool `json:"isCustomized"`
}
