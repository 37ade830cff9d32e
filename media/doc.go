// SPDX-License-Identifier: EPL-2.0

// Package media defines how compressed audio reaches the decoder pump:
// containers are opened through a Registry into a Demuxer, Probe picks the
// first audio track, and a Decoder turns that track's packets into PCM.
//
// The Decoder contract is queue shaped. Feed may refuse input
// with ErrTryAgain until Drain has taken output, and Drain reports a format
// change before the first buffer of a new format. NewPCMDecoder implements
// it for demuxers that already produce PCM, which is how every container
// under formats/ works.
package media
