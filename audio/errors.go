// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedEncoding = errors.New("unsupported PCM encoding")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrInvalidChannelMap   = errors.New("channel map shorter than output channel count")
	ErrPartialFrame        = errors.New("sample count must be multiple of channels")
)
