// SPDX-License-Identifier: EPL-2.0

package tonemp3

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/tonemp3/media"
)

// Source opens independent readers over the same audio, so tags and audio
// can be read concurrently.
type Source interface {
	// Name is a file name or path used as a format hint and in logs.
	Name() string
	Open() (io.ReadSeekCloser, error)
}

// FileSource reads the file at path.
func FileSource(path string) Source { return fileSource(path) }

type fileSource string

func (s fileSource) Name() string { return string(s) }

func (s fileSource) Open() (io.ReadSeekCloser, error) {
	f, err := os.Open(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrSourceUnavailable, err)
	}

	return f, nil
}

// BytesSource serves data from memory. name only serves as a hint.
func BytesSource(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Name() string { return s.name }

func (s bytesSource) Open() (io.ReadSeekCloser, error) {
	return nopCloser{bytes.NewReader(s.data)}, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// displayName shortens a path for log output.
func displayName(s Source) string {
	return filepath.Base(s.Name())
}
