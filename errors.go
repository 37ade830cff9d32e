// SPDX-License-Identifier: EPL-2.0

package tonemp3

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/id3"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/mp3enc"
	"github.com/ik5/tonemp3/pump"
	"github.com/ik5/tonemp3/sink"
)

// Sentinels for errors.Is against a *ConversionError.
var (
	ErrNoAudioTrack            = media.ErrNoAudioTrack
	ErrUnsupportedEncoding     = audio.ErrUnsupportedEncoding
	ErrFormatChanged           = pump.ErrFormatChanged
	ErrReconfigurationConflict = mp3enc.ErrReconfigurationConflict
	ErrEncoderFailure          = mp3enc.ErrEncoderFailure
	ErrSinkUnavailable         = sink.ErrUnavailable
	ErrSourceUnavailable       = media.ErrSourceUnavailable
	ErrCancelled               = pump.ErrCancelled
	ErrInvalidOptions          = errors.New("invalid conversion options")
)

// Kind classifies a conversion failure.
type Kind int

const (
	KindSourceUnavailable Kind = iota
	KindNoAudioTrack
	KindUnsupportedEncoding
	KindFormatChanged
	KindReconfigurationConflict
	KindEncoderFailure
	KindSinkUnavailable
	KindCancelled
	KindInvalidOptions
)

var kindNames = map[Kind]string{
	KindSourceUnavailable:       "source unavailable",
	KindNoAudioTrack:            "no audio track",
	KindUnsupportedEncoding:     "unsupported encoding",
	KindFormatChanged:           "format changed",
	KindReconfigurationConflict: "reconfiguration conflict",
	KindEncoderFailure:          "encoder failure",
	KindSinkUnavailable:         "sink unavailable",
	KindCancelled:               "cancelled",
	KindInvalidOptions:          "invalid options",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// sentinel returns the error errors.Is matches for k.
func (k Kind) sentinel() error {
	switch k {
	case KindNoAudioTrack:
		return ErrNoAudioTrack
	case KindUnsupportedEncoding:
		return ErrUnsupportedEncoding
	case KindFormatChanged:
		return ErrFormatChanged
	case KindReconfigurationConflict:
		return ErrReconfigurationConflict
	case KindEncoderFailure:
		return ErrEncoderFailure
	case KindSinkUnavailable:
		return ErrSinkUnavailable
	case KindCancelled:
		return ErrCancelled
	case KindInvalidOptions:
		return ErrInvalidOptions
	default:
		return ErrSourceUnavailable
	}
}

// ConversionError is the only error type Convert returns.
type ConversionError struct {
	Kind Kind
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert: %s: %v", e.Kind, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is matches the sentinel of e.Kind, so a failure is always recognisable by
// its kind even when the cause came from another package.
func (e *ConversionError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// classification order matters: the first match wins.
var classes = []struct {
	kind Kind
	errs []error
}{
	{kind: KindCancelled, errs: []error{pump.ErrCancelled, context.Canceled, context.DeadlineExceeded}},
	{kind: KindInvalidOptions, errs: []error{ErrInvalidOptions, audio.ErrInvalidChannelMap}},
	{kind: KindNoAudioTrack, errs: []error{media.ErrNoAudioTrack}},
	{kind: KindFormatChanged, errs: []error{pump.ErrFormatChanged}},
	{kind: KindReconfigurationConflict, errs: []error{mp3enc.ErrReconfigurationConflict}},
	{kind: KindUnsupportedEncoding, errs: []error{audio.ErrUnsupportedEncoding}},
	{kind: KindSinkUnavailable, errs: []error{sink.ErrUnavailable}},
	{kind: KindEncoderFailure, errs: []error{
		mp3enc.ErrEncoderFailure,
		mp3enc.ErrUnsupportedSampleRate,
		mp3enc.ErrUnsupportedChannels,
		mp3enc.ErrUnsupportedBitrate,
		mp3enc.ErrSessionClosed,
		mp3enc.ErrNotConfigured,
		id3.ErrTagTooLarge,
		id3.ErrInvalidText,
		id3.ErrInvalidFrame,
	}},
}

func classify(err error) Kind {
	for _, c := range classes {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return c.kind
			}
		}
	}

	return KindSourceUnavailable
}

// wrap tags err with its kind; nil stays nil.
func wrap(err error) error {
	if err == nil {
		return nil
	}

	var ce *ConversionError
	if errors.As(err, &ce) {
		return err
	}

	return &ConversionError{Kind: classify(err), Err: err}
}
