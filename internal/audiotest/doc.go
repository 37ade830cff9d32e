// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources, scripted decoders and
// in-memory sinks for testing the conversion pipeline, plus WAV file
// fixtures (16-bit, 24-bit and float) with optional LIST/INFO tags.
package audiotest
