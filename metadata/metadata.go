// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FallbackImageMIME is used for cover art whose type cannot be sniffed.
const FallbackImageMIME = "image/*"

// Picture is embedded cover art.
type Picture struct {
	MIME string
	Data []byte
}

// Track is the descriptive metadata carried over to the output tag. Every
// field is optional.
type Track struct {
	Title       string
	Artist      string
	Album       string
	TrackNumber string
	Cover       *Picture
}

// IsEmpty reports whether t has nothing worth tagging.
func (t Track) IsEmpty() bool {
	return blank(t.Title) && blank(t.Artist) && blank(t.Album) &&
		blank(t.TrackNumber) && !t.HasCover()
}

// HasCover reports whether t carries picture bytes.
func (t Track) HasCover() bool {
	return t.Cover != nil && len(t.Cover.Data) > 0
}

// Overlay returns t with every non-blank field of o taking precedence.
func (t Track) Overlay(o Track) Track {
	if !blank(o.Title) {
		t.Title = o.Title
	}
	if !blank(o.Artist) {
		t.Artist = o.Artist
	}
	if !blank(o.Album) {
		t.Album = o.Album
	}
	if !blank(o.TrackNumber) {
		t.TrackNumber = o.TrackNumber
	}
	if o.HasCover() {
		t.Cover = o.Cover
	}

	return t
}

// ImageMIME sniffs the MIME type of picture bytes.
func ImageMIME(data []byte) string {
	m := mimetype.Detect(data)
	if strings.HasPrefix(m.String(), "image/") {
		return m.String()
	}

	return FallbackImageMIME
}

func newPicture(mime string, data []byte) *Picture {
	if len(data) == 0 {
		return nil
	}

	// "-->" marks a linked picture in ID3 and FLAC.
	if mime = strings.TrimSpace(mime); mime == "" || mime == "-->" || !strings.Contains(mime, "/") {
		mime = ImageMIME(data)
	}

	return &Picture{MIME: strings.ToLower(mime), Data: data}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
