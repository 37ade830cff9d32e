// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"io"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"
)

// pictureFrontCover is the APIC and FLAC picture type of a front cover.
const pictureFrontCover = 3

func readFLAC(rs io.ReadSeeker) (Track, error) {
	stream, err := flac.Parse(rs)
	if err != nil {
		return Track{}, fmt.Errorf("flac: %w", err)
	}

	var (
		t        Track
		pictures []*meta.Picture
	)
	for _, block := range stream.Blocks {
		switch body := block.Body.(type) {
		case *meta.VorbisComment:
			t = t.Overlay(fromComments(body.Tags))
		case *meta.Picture:
			pictures = append(pictures, body)
		}
	}

	if !t.HasCover() {
		if pic := pickPicture(pictures); pic != nil {
			t.Cover = newPicture(pic.MIME, pic.Data)
		}
	}

	return t, nil
}

// fromComments maps Vorbis comment fields, matched case-insensitively.
func fromComments(tags [][2]string) Track {
	var (
		t        Track
		pictures []*meta.Picture
	)
	for _, kv := range tags {
		value := strings.TrimSpace(kv[1])
		switch strings.ToUpper(kv[0]) {
		case "TITLE":
			t.Title = first(t.Title, value)
		case "ARTIST":
			t.Artist = first(t.Artist, value)
		case "ALBUM":
			t.Album = first(t.Album, value)
		case "TRACKNUMBER":
			t.TrackNumber = first(t.TrackNumber, value)
		case "METADATA_BLOCK_PICTURE":
			if pic, err := decodeBlockPicture(value); err == nil {
				pictures = append(pictures, pic)
			}
		}
	}

	if pic := pickPicture(pictures); pic != nil {
		t.Cover = newPicture(pic.MIME, pic.Data)
	}

	return t
}

// pickPicture prefers the front cover, then the first picture.
func pickPicture(pictures []*meta.Picture) *meta.Picture {
	for _, p := range pictures {
		if p.Type == pictureFrontCover {
			return p
		}
	}
	if len(pictures) > 0 {
		return pictures[0]
	}

	return nil
}

func first(have, v string) string {
	if have != "" {
		return have
	}
	return v
}
