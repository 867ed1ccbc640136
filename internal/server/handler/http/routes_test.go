package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"chordbook/internal/models"
)

// staticVerifier accepts exactly one token.
type staticVerifier struct {
	token  string
	userID string
}

func (v *staticVerifier) Verify(token string) (string, error) {
	if token == v.token {
		return v.userID, nil
	}
	return "", errors.New("invalid token")
}

func testRouter(songs *fakeSongService, scraper *fakeScrapeService) http.Handler {
	return NewRouter(
		&AuthHandler{AuthService: &fakeAuthService{}},
		&SongHandler{SongService: songs},
		&ScrapeHandler{ScrapeService: scraper},
		&staticVerifier{token: "good", userID: "u1"},
		zap.NewNop(),
		"",
	)
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(&fakeSongService{}, &fakeScrapeService{})

	for _, tc := range []struct{ method, path string }{
		{"PUT", "/songs/s1"},
		{"POST", "/scrape"},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d; want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouter_GetSongIsPublic(t *testing.T) {
	songs := &fakeSongService{view: &models.SongView{ID: "s1", Artist: "A", Title: "T", Content: "C"}}
	router := testRouter(songs, &fakeScrapeService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/songs/s1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if songs.gotViewer != "" {
		t.Errorf("anonymous request resolved viewer %q; want empty", songs.gotViewer)
	}
}

func TestRouter_GetSongWithToken(t *testing.T) {
	songs := &fakeSongService{view: &models.SongView{ID: "s1"}}
	router := testRouter(songs, &fakeScrapeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/songs/s1", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if songs.gotViewer != "u1" {
		t.Errorf("viewer = %q; want u1", songs.gotViewer)
	}
}

func TestRouter_PutSongWithToken(t *testing.T) {
	songs := &fakeSongService{view: &models.SongView{ID: "s1", Customized: true}}
	router := testRouter(songs, &fakeScrapeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/songs/s1", bytes.NewBufferString(`{"transposition":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200: %s", rec.Code, rec.Body.String())
	}
	if songs.gotViewer != "u1" {
		t.Errorf("viewer = %q; want u1", songs.gotViewer)
	}
	if !strings.Contains(rec.Body.String(), `"isCustomized":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_InvalidTokenRejectedOnOptionalRoute(t *testing.T) {
	router := testRouter(&fakeSongService{view: &models.SongView{}}, &fakeScrapeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/songs/s1", nil)
	req.Header.Set("Authorization", "Bearer forged")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401 for a forged token", rec.Code)
	}
}

func TestRouter_RejectsNonJSONBody(t *testing.T) {
	router := testRouter(&fakeSongService{}, &fakeScrapeService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/register", bytes.NewBufferString("username=alice"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d; want 415", rec.Code)
	}
}
