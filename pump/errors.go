// SPDX-License-Identifier: EPL-2.0

package pump

import "errors"

var (
	// ErrFormatChanged is returned when the decoder renegotiates sample
	// rate or channel count after the sink was configured.
	ErrFormatChanged = errors.New("decoder format changed mid-stream")

	// ErrCancelled is returned when the context ends or the source is
	// closed underneath the pump.
	ErrCancelled = errors.New("conversion cancelled")

	// ErrStalled is returned when the decoder keeps answering try-again
	// after all input was fed.
	ErrStalled = errors.New("decoder stalled")

	// ErrEmptyStream is returned when the stream ended before any PCM
	// was decoded.
	ErrEmptyStream = errors.New("stream ended without audio")
)
