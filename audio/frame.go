// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/tonemp3/utils"
)

// Frame is a block of interleaved samples in Format. Exactly one of Int16
// and Float32 is populated, matching Format.Representation.
type Frame struct {
	Format  Format
	Int16   []int16
	Float32 []float32
}

// NewFrame decodes little-endian PCM bytes laid out as f. Trailing bytes
// that do not make a whole frame are dropped.
func NewFrame(f Format, data []byte) (Frame, error) {
	if err := f.Validate(); err != nil {
		return Frame{}, err
	}

	whole := len(data) / f.FrameSize() * f.FrameSize()
	fr := Frame{Format: f}

	switch f.Representation {
	case Int16:
		fr.Int16 = utils.DecodeInt16LE(nil, data[:whole])
	case Float32:
		fr.Float32 = utils.DecodeFloat32LE(nil, data[:whole])
	}

	return fr, nil
}

// Len returns the number of samples across all channels.
func (fr Frame) Len() int {
	if fr.Format.Representation == Float32 {
		return len(fr.Float32)
	}
	return len(fr.Int16)
}

// Frames returns the number of interleaved frames.
func (fr Frame) Frames() int {
	if fr.Format.Channels <= 0 {
		return 0
	}
	return fr.Len() / fr.Format.Channels
}

// Check verifies that the sample slice matches the declared format.
func (fr Frame) Check() error {
	if err := fr.Format.Validate(); err != nil {
		return err
	}
	if fr.Len()%fr.Format.Channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, fr.Len(), fr.Format.Channels)
	}

	return nil
}
