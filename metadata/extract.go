// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

type reader func(rs io.ReadSeeker) (Track, error)

// readers in detection order; the first whose type matches wins.
var readers = []struct {
	mime string
	read reader
}{
	{mime: "audio/mpeg", read: readID3},
	{mime: "audio/flac", read: readFLAC},
	{mime: "audio/ogg", read: readVorbis},
	{mime: "audio/wav", read: readWAV},
	{mime: "audio/aiff", read: readNone},
}

// Extract reads descriptive tags from an audio source. The format is
// sniffed from content. rs is left at an unspecified offset.
func Extract(rs io.ReadSeeker) (Track, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Track{}, fmt.Errorf("seek: %w", err)
	}

	m, err := mimetype.DetectReader(rs)
	if err != nil {
		return Track{}, fmt.Errorf("detect: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Track{}, fmt.Errorf("seek: %w", err)
	}

	for _, r := range readers {
		if m.Is(r.mime) {
			return r.read(rs)
		}
	}

	return Track{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, m.String())
}

func readNone(io.ReadSeeker) (Track, error) {
	return Track{}, nil
}
