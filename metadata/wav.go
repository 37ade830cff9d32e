// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
)

// readWAV reads the RIFF LIST/INFO chunk.
func readWAV(rs io.ReadSeeker) (Track, error) {
	dec := gowav.NewDecoder(rs)
	dec.ReadMetadata()
	if err := dec.Err(); err != nil {
		return Track{}, fmt.Errorf("wav: %w", err)
	}

	md := dec.Metadata
	if md == nil {
		return Track{}, nil
	}

	return Track{
		Title:       md.Title,
		Artist:      md.Artist,
		Album:       md.Product,
		TrackNumber: md.TrackNbr,
	}, nil
}
