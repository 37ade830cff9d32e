// SPDX-License-Identifier: EPL-2.0

package media

import "errors"

var (
	// ErrNoAudioTrack is returned by Probe when no track carries audio.
	ErrNoAudioTrack = errors.New("no audio track found")

	// ErrSourceUnavailable marks failures to read or decode the source.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnknownFormat means no registered demuxer recognises the source.
	ErrUnknownFormat = errors.New("unknown container format")

	// ErrTrackOutOfRange is returned by SelectTrack for an invalid index.
	ErrTrackOutOfRange = errors.New("track index out of range")

	// ErrNoTrackSelected is returned by ReadPacket before SelectTrack.
	ErrNoTrackSelected = errors.New("no track selected")

	// ErrTryAgain is returned by Decoder.Feed when no input slot is free.
	ErrTryAgain = errors.New("decoder input queue full, try again")

	// ErrEndOfStream is returned when feeding or draining past end of stream.
	ErrEndOfStream = errors.New("decoder already reached end of stream")

	// ErrDecoderClosed is returned by any call on a closed decoder.
	ErrDecoderClosed = errors.New("decoder closed")
)
