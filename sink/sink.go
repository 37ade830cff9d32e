// SPDX-License-Identifier: EPL-2.0

// Package sink writes conversion output durably: bytes are buffered, then
// flushed and synced to storage before success is reported.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// BufferSize amortizes the small writes an MP3 encoder produces.
const BufferSize = 256 << 10

var (
	ErrUnavailable = errors.New("destination unavailable")
	ErrClosed      = errors.New("sink closed")
)

// Target is a destination that can commit its contents to stable storage.
// *os.File is a Target.
type Target interface {
	io.Writer
	Sync() error
	Close() error
}

// Writer buffers writes to a Target. Every error it returns wraps
// ErrUnavailable. After a failure the target holds an unspecified prefix of
// the data; removing it is the caller's job.
type Writer struct {
	target  Target
	buf     *bufio.Writer
	written int64
	err     error
	closed  bool
}

// NewWriter wraps t with a BufferSize buffer.
func NewWriter(t Target) *Writer {
	return &Writer{
		target: t,
		buf:    bufio.NewWriterSize(t, BufferSize),
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, ErrClosed)
	}
	if w.err != nil {
		return 0, w.err
	}

	n, err := w.buf.Write(p)
	w.written += int64(n)
	if err != nil {
		w.err = fmt.Errorf("%w: write: %w", ErrUnavailable, err)
		return n, w.err
	}

	return n, nil
}

// Written returns the number of bytes accepted so far.
func (w *Writer) Written() int64 { return w.written }

// Commit flushes the buffer and syncs the target. Once it returns nil every
// byte written so far survives a crash.
func (w *Writer) Commit() error {
	if w.closed {
		return fmt.Errorf("%w: %w", ErrUnavailable, ErrClosed)
	}
	if w.err != nil {
		return w.err
	}

	if err := w.buf.Flush(); err != nil {
		w.err = fmt.Errorf("%w: flush: %w", ErrUnavailable, err)
		return w.err
	}
	if err := w.target.Sync(); err != nil {
		w.err = fmt.Errorf("%w: sync: %w", ErrUnavailable, err)
		return w.err
	}

	return nil
}

// Close closes the target without flushing. Uncommitted bytes are lost.
// It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.target.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrUnavailable, err)
	}

	return nil
}

// WriteAllThenSync runs fill against a buffered writer on t, then commits
// and closes t. t is closed on every path; a close error is reported only
// when everything else succeeded.
func WriteAllThenSync(t Target, fill func(w *Writer) error) (err error) {
	w := NewWriter(t)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if err := fill(w); err != nil {
		return err
	}

	return w.Commit()
}

// Create opens path for writing, truncating an existing file.
func Create(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return f, nil
}
