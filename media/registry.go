// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// Opener constructs a Demuxer over a seekable source.
type Opener interface {
	Open(rs io.ReadSeeker) (Demuxer, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(rs io.ReadSeeker) (Demuxer, error)

func (f OpenerFunc) Open(rs io.ReadSeeker) (Demuxer, error) { return f(rs) }

// Registry maps container MIME types (e.g., "audio/wav", "audio/flac") to
// demuxer openers.
type Registry struct {
	openers map[string]Opener
	// order keeps registration order so detection is deterministic.
	order []string
	exts  map[string]string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]Opener),
		exts:    make(map[string]string),
		mtx:     &sync.Mutex{},
	}
}

// Register binds mime to o. Extensions (with or without the leading dot)
// are used when content sniffing is inconclusive.
func (r *Registry) Register(mime string, o Opener, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	mime = strings.ToLower(mime)
	if _, ok := r.openers[mime]; !ok {
		r.order = append(r.order, mime)
	}
	r.openers[mime] = o

	for _, ext := range exts {
		r.exts[normalizeExt(ext)] = mime
	}
}

func (r *Registry) Get(mime string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.openers[strings.ToLower(mime)]
	return o, ok
}

// MIMETypes lists registered types in registration order.
func (r *Registry) MIMETypes() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Detect sniffs rs and returns the registered MIME type it matches, walking
// from the most specific detected type to its parents. When sniffing finds
// nothing registered, the extension of hint (a file name or extension) is
// tried. rs is rewound to the start before returning.
func (r *Registry) Detect(rs io.ReadSeeker, hint string) (string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	detected, err := mimetype.DetectReader(rs)
	if err != nil {
		return "", fmt.Errorf("%w: sniffing: %w", ErrSourceUnavailable, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	for m := detected; m != nil; m = m.Parent() {
		for _, key := range r.order {
			if m.Is(key) {
				return key, nil
			}
		}
	}

	if hint != "" {
		if mime, ok := r.exts[normalizeExt(filepath.Ext(hint))]; ok {
			return mime, nil
		}
		if mime, ok := r.exts[normalizeExt(hint)]; ok {
			return mime, nil
		}
	}

	return "", fmt.Errorf("%w: detected %s", ErrUnknownFormat, detected)
}

// Open detects the container of rs and opens a demuxer for it.
func (r *Registry) Open(rs io.ReadSeeker, hint string) (Demuxer, error) {
	mime, err := r.Detect(rs, hint)
	if err != nil {
		return nil, err
	}

	o, ok := r.Get(mime)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, mime)
	}

	d, err := o.Open(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrSourceUnavailable, mime, err)
	}

	return d, nil
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
