// SPDX-License-Identifier: EPL-2.0

package mp3enc

import (
	"fmt"
	"io"

	"github.com/braheezy/shine-mp3/pkg/mp3"
)

// Engine is a block-oriented MP3 encoder.
type Engine interface {
	// Encode compresses interleaved samples. len(samples) is always a
	// multiple of FrameSize() times the channel count.
	Encode(w io.Writer, samples []int16) error
	// Flush writes whatever the engine still holds.
	Flush(w io.Writer) error
	// FrameSize returns the per-channel samples in one encoder block.
	FrameSize() int
}

// EngineFactory opens an engine for validated params.
type EngineFactory func(p Params) (Engine, error)

// ShineBitrate is the only bitrate the shine engine produces.
const ShineBitrate = 128

// ShineSampleRates lists the rates the shine engine encodes at
// ShineBitrate, ascending. MPEG-2.5 (8 to 12 kHz) has no 128 kbps mode.
var ShineSampleRates = []int{16000, 22050, 24000, 32000, 44100, 48000}

type shineEncoder interface {
	Write(w io.Writer, data []int16) error
}

type shineEngine struct {
	enc       shineEncoder
	frameSize int
	channels  int
}

// NewShineEngine returns a pure-Go layer III engine. It encodes at
// ShineBitrate and one of ShineSampleRates only, and ignores Quality.
func NewShineEngine(p Params) (Engine, error) {
	if p.Bitrate != ShineBitrate {
		return nil, fmt.Errorf("%w: shine encodes at %d kbps, got %d", ErrUnsupportedBitrate, ShineBitrate, p.Bitrate)
	}
	if mp3.CheckConfig(p.SampleRate, p.Bitrate) < 0 {
		return nil, fmt.Errorf("%w: shine has no %d kbps mode at %d Hz", ErrUnsupportedSampleRate, p.Bitrate, p.SampleRate)
	}

	return newShineEngine(mp3.NewEncoder(p.SampleRate, p.Channels), p), nil
}

func newShineEngine(enc shineEncoder, p Params) *shineEngine {
	return &shineEngine{
		enc:       enc,
		frameSize: SamplesPerFrame(p.SampleRate),
		channels:  p.Channels,
	}
}

// Encode hands shine one block per Write: given several mono blocks at
// once it encodes only every other one.
func (e *shineEngine) Encode(w io.Writer, samples []int16) error {
	block := e.frameSize * e.channels
	for len(samples) > 0 {
		n := min(block, len(samples))
		if err := e.enc.Write(w, samples[:n]); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoderFailure, err)
		}
		samples = samples[n:]
	}

	return nil
}

// Flush is a no-op: shine emits every frame as soon as it is complete.
func (e *shineEngine) Flush(io.Writer) error { return nil }

func (e *shineEngine) FrameSize() int { return e.frameSize }
