// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/tonemp3/utils"
)

// Conditioner remixes decoded PCM into the layout an encoder was opened with.
type Conditioner struct {
	channels       int
	channelMap     ChannelMap
	representation Representation
}

// NewConditioner returns a conditioner producing channels channels in
// representation target. m may be nil; it is only consulted when the output
// has more than one channel and differs from the input channel count.
func NewConditioner(channels int, m ChannelMap, target Representation) (*Conditioner, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if target != Int16 && target != Float32 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, target)
	}
	if m != nil && channels > 1 {
		if err := m.Validate(channels); err != nil {
			return nil, err
		}
	}

	return &Conditioner{
		channels:       channels,
		channelMap:     m,
		representation: target,
	}, nil
}

// Output returns the format produced for input in.
func (c *Conditioner) Output(in Format) Format {
	return Format{
		SampleRate:     in.SampleRate,
		Channels:       c.channels,
		Representation: c.representation,
	}
}

// Condition remixes one frame. See the package function Condition.
func (c *Conditioner) Condition(in Frame) (Frame, error) {
	return Condition(in, c.channels, c.channelMap, c.representation)
}

// Condition converts in to channels channels of representation target and
// returns a fresh buffer; in is never modified.
//
// Equal channel counts pass through. A mono output is the per-frame mean of
// all input channels. Anything else copies input channel m[c] (clamped to
// the last input channel) into output channel c, using DefaultChannelMap
// when m is nil. Float samples headed for Int16 are clamped to [-1, 1] first.
func Condition(in Frame, channels int, m ChannelMap, target Representation) (Frame, error) {
	if err := in.Check(); err != nil {
		return Frame{}, err
	}
	if channels <= 0 {
		return Frame{}, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if target == RepresentationUnknown {
		target = in.Format.Representation
	}

	inChannels := in.Format.Channels
	if channels > 1 && channels != inChannels {
		if m == nil {
			m = DefaultChannelMap(inChannels, channels)
		}
		if err := m.Validate(channels); err != nil {
			return Frame{}, err
		}
	}

	out := Frame{Format: Format{
		SampleRate:     in.Format.SampleRate,
		Channels:       channels,
		Representation: target,
	}}

	switch in.Format.Representation {
	case Int16:
		mixed := remix(in.Int16, inChannels, channels, m, downmixInt16)
		switch target {
		case Int16:
			out.Int16 = mixed
		case Float32:
			out.Float32 = utils.Int16sToFloat32s(nil, mixed)
		default:
			return Frame{}, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, target)
		}
	case Float32:
		mixed := remix(in.Float32, inChannels, channels, m, downmixFloat32)
		switch target {
		case Float32:
			out.Float32 = mixed
		case Int16:
			out.Int16 = utils.Float32sToInt16s(nil, mixed)
		default:
			return Frame{}, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, target)
		}
	}

	return out, nil
}

func remix[T int16 | float32](src []T, inChannels, outChannels int, m ChannelMap, downmix func([]T, int) []T) []T {
	switch {
	case outChannels == inChannels:
		dst := make([]T, len(src))
		copy(dst, src)
		return dst
	case outChannels == 1:
		return downmix(src, inChannels)
	}

	frames := len(src) / inChannels
	dst := make([]T, frames*outChannels)
	for f := range frames {
		inBase := f * inChannels
		outBase := f * outChannels
		for c := range outChannels {
			dst[outBase+c] = src[inBase+m.source(c, inChannels)]
		}
	}

	return dst
}
