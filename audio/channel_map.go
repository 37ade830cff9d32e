// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMap lists, for every output channel, the input channel it copies.
// Indices beyond the last input channel are clamped to it rather than
// rejected.
type ChannelMap []int

// DefaultChannelMap maps output channel c to input channel c, reusing the
// last input channel when there are fewer inputs than outputs. A mono input
// feeding a stereo output is duplicated to both sides.
func DefaultChannelMap(inputChannels, outputChannels int) ChannelMap {
	m := make(ChannelMap, outputChannels)
	for c := range m {
		m[c] = min(c, max(inputChannels-1, 0))
	}

	return m
}

// Validate checks m can drive outputChannels channels.
func (m ChannelMap) Validate(outputChannels int) error {
	if len(m) < outputChannels {
		return fmt.Errorf("%w: %d entries, %d channels", ErrInvalidChannelMap, len(m), outputChannels)
	}
	for c := range outputChannels {
		if m[c] < 0 {
			return fmt.Errorf("%w: negative index %d at %d", ErrInvalidChannelMap, m[c], c)
		}
	}

	return nil
}

// source returns the input channel for output channel c.
func (m ChannelMap) source(c, inputChannels int) int {
	return min(m[c], inputChannels-1)
}
