// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Representation is the in-memory encoding of a PCM sample.
type Representation int

const (
	RepresentationUnknown Representation = iota
	Int16
	Float32
)

func (r Representation) String() string {
	switch r {
	case Int16:
		return "int16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("representation(%d)", int(r))
	}
}

// BytesPerSample returns the size of one sample of r, or 0 when r is unknown.
func (r Representation) BytesPerSample() int {
	switch r {
	case Int16:
		return 2
	case Float32:
		return 4
	default:
		return 0
	}
}

// Format describes interleaved PCM.
type Format struct {
	// SampleRate in Hz.
	SampleRate int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// Representation of each sample.
	Representation Representation
}

// Validate reports whether f can be fed to the conditioner and encoder.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, f.Channels)
	}
	if f.Representation != Int16 && f.Representation != Float32 {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f.Representation)
	}

	return nil
}

// SameShape reports whether f and o agree on sample rate and channel count.
// The representation is not part of the shape.
func (f Format) SameShape(o Format) bool {
	return f.SampleRate == o.SampleRate && f.Channels == o.Channels
}

// FrameSize returns the number of bytes in one interleaved frame.
func (f Format) FrameSize() int {
	return f.Channels * f.Representation.BytesPerSample()
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%s", f.SampleRate, f.Channels, f.Representation)
}
