// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the conversion pipeline is
// built from.
//
// This package contains:
//   - Format and Representation, describing interleaved PCM
//   - Frame, a block of decoded samples in one Format
//   - ChannelMap and Conditioner for channel remixing
//   - Resampler for sample rate conversion
//
// # Formats and Frames
//
// A Format is a sample rate, a channel count and a sample representation
// (Int16 or Float32). Decoders emit little-endian bytes; NewFrame turns them
// into typed samples:
//
//	f := audio.Format{SampleRate: 44100, Channels: 2, Representation: audio.Int16}
//	frame, err := audio.NewFrame(f, data)
//
// # Conditioning
//
// Condition remixes a frame into the layout an encoder was opened with:
//
//	mono, err := audio.Condition(frame, 1, nil, audio.Int16)
//
// The rules, applied per frame:
//   - equal channel counts pass through unchanged
//   - one output channel is the mean of all input channels (a true downmix,
//     not a first-channel pick)
//   - any other count copies input channel m[c] into output channel c,
//     clamping indices past the last input channel
//   - float samples converted to Int16 are clamped to [-1, 1], scaled by
//     32767 and rounded, so they saturate instead of wrapping
//
// The input frame is never modified; every call returns fresh buffers.
//
// # Resampling
//
// The Resampler changes the sample rate using cubic interpolation. It is
// push driven so it can sit inside a decode loop:
//
//	rs := audio.NewResampler(96000, 48000, 2)
//	for each decoded block {
//	    out := rs.Process(block)
//	    // encode out
//	}
//	tail := rs.Flush()
//
// A one-pole low-pass filter is applied when downsampling.
package audio
