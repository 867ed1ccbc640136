// Package scrape implements the ingestion pipeline that turns an external
// chord-sheet page into a validated, deduplicated master song.
package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"chordbook/internal/apperr"
)

// Fields holds the three values extracted from a chord-sheet page.
type Fields struct {
	// Title is the song title, trimmed of surrounding whitespace.
	Title string
	// Artist is the performing artist, trimmed of surrounding whitespace.
	Artist string
	// Content is the inner markup of the chord/lyric block, with nested
	// tags preserved — downstream rendering depends on them.
	Content string
}

// Extractor locates the structural anchors of a source page. The selectors
// behind it are an unstable contract with the source site; isolating them
// here keeps a layout change a one-type fix.
type Extractor interface {
	// Extract parses HTML and returns the song fields, or an
	// apperr.ParseError naming the missing anchor.
	Extract(r io.Reader) (Fields, error)
}

// Anchor selectors for Cifra Club song pages.
const (
	titleSelector   = "h1.t1"
	artistSelector  = "h2.t3"
	contentSelector = "pre"
)

// PageExtractor extracts song fields from Cifra Club HTML.
type PageExtractor struct{}

// Extract parses the page and locates the title, artist and content
// anchors. Each missing anchor is reported individually so operators can
// tell which part of the upstream layout changed.
func (PageExtractor) Extract(r io.Reader) (Fields, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Fields{}, fmt.Errorf("parse html: %w", err)
	}

	title := doc.Find(titleSelector).First()
	if title.Length() == 0 {
		return Fields{}, &apperr.ParseError{Anchor: "title", Selector: titleSelector}
	}
	artist := doc.Find(artistSelector).First()
	if artist.Length() == 0 {
		return Fields{}, &apperr.ParseError{Anchor: "artist", Selector: artistSelector}
	}
	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return Fields{}, &apperr.ParseError{Anchor: "content", Selector: contentSelector}
	}

	// Inner markup, not text: chord annotations are nested tags.
	inner, err := content.Html()
	if err != nil {
		return Fields{}, fmt.Errorf("render content: %w", err)
	}

	return Fields{
		Title:   strings.TrimSpace(title.Text()),
		Artist:  strings.TrimSpace(artist.Text()),
		Content: inner,
	}, nil
}
