// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"slices"

	"github.com/ik5/tonemp3/audio"
)

// FrameRecorder records what a decode loop hands downstream.
type FrameRecorder struct {
	Formats []audio.Format
	Frames  []audio.Frame

	ConfigureErr error
	WriteErr     error
}

func (r *FrameRecorder) Configure(f audio.Format) error {
	if r.ConfigureErr != nil {
		return r.ConfigureErr
	}
	r.Formats = append(r.Formats, f)
	return nil
}

func (r *FrameRecorder) WriteFrame(fr audio.Frame) error {
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Frames = append(r.Frames, fr)
	return nil
}

// Int16 concatenates all recorded int16 samples.
func (r *FrameRecorder) Int16() []int16 {
	var out []int16
	for _, fr := range r.Frames {
		out = append(out, fr.Int16...)
	}
	return out
}

// Target is an in-memory sink.Target.
type Target struct {
	bytes.Buffer

	WriteErr error
	SyncErr  error

	// Synced holds the length of the buffer at each Sync.
	Synced []int
	Closed bool
}

func (t *Target) Write(p []byte) (int, error) {
	if t.WriteErr != nil {
		return 0, t.WriteErr
	}
	return t.Buffer.Write(p)
}

func (t *Target) Sync() error {
	if t.SyncErr != nil {
		return t.SyncErr
	}
	t.Synced = append(t.Synced, t.Len())
	return nil
}

func (t *Target) Close() error {
	t.Closed = true
	return nil
}

// Content returns a copy of everything written.
func (t *Target) Content() []byte { return slices.Clone(t.Bytes()) }
