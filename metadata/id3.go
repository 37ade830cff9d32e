// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"io"

	"github.com/bogem/id3v2/v2"
)

func readID3(rs io.ReadSeeker) (Track, error) {
	tag, err := id3v2.ParseReader(rs, id3v2.Options{Parse: true})
	if err != nil {
		return Track{}, fmt.Errorf("id3: %w", err)
	}

	t := Track{
		Title:       tag.Title(),
		Artist:      tag.Artist(),
		Album:       tag.Album(),
		TrackNumber: tag.GetTextFrame(tag.CommonID("Track number/Position in set")).Text,
	}

	var cover *id3v2.PictureFrame
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if cover == nil || pic.PictureType == id3v2.PTFrontCover {
			cover = &pic
		}
		if pic.PictureType == id3v2.PTFrontCover {
			break
		}
	}
	if cover != nil {
		t.Cover = newPicture(cover.MimeType, cover.Picture)
	}

	return t, nil
}
