// SPDX-License-Identifier: EPL-2.0

package mp3enc

import "errors"

var (
	ErrEncoderFailure          = errors.New("mp3 encoder failure")
	ErrReconfigurationConflict = errors.New("encoder already configured with different parameters")
	ErrNotConfigured           = errors.New("encoder not configured")
	ErrSessionClosed           = errors.New("encoder session closed")
	ErrUnsupportedSampleRate   = errors.New("sample rate not supported by MP3")
	ErrUnsupportedChannels     = errors.New("MP3 supports 1 or 2 channels")
	ErrUnsupportedBitrate      = errors.New("unsupported bitrate")
)
