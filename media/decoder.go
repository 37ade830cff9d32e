// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"time"

	"github.com/ik5/tonemp3/audio"
)

// OutputKind tells what a Drain call produced.
type OutputKind int

const (
	// OutputTryAgain means nothing is ready yet; poll again.
	OutputTryAgain OutputKind = iota
	// OutputFormatChanged announces the format of the buffers that follow.
	OutputFormatChanged
	// OutputBuffer carries decoded PCM.
	OutputBuffer
)

func (k OutputKind) String() string {
	switch k {
	case OutputTryAgain:
		return "try-again"
	case OutputFormatChanged:
		return "format-changed"
	case OutputBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("output(%d)", int(k))
	}
}

// Output is one result of Decoder.Drain.
type Output struct {
	Kind OutputKind
	// Format is set for OutputFormatChanged and OutputBuffer.
	Format audio.Format
	// Data is little-endian PCM in Format. It is only valid until the
	// next call on the decoder.
	Data      []byte
	Timestamp time.Duration
	// EOS is set on the last buffer the decoder will produce.
	EOS bool
}

// Decoder turns packets into PCM. Input and output are decoupled: Feed
// hands in a packet, Drain collects whatever output is ready.
type Decoder interface {
	// Feed queues p. It returns ErrTryAgain when no input slot is free;
	// the caller must drain and retry with the same packet.
	Feed(p Packet) error
	// FeedEOS marks the end of input.
	FeedEOS() error
	// Drain returns the next output, waiting at most timeout.
	Drain(timeout time.Duration) (Output, error)
	Close() error
}

// DecoderFactory creates a decoder for the selected track.
type DecoderFactory func(track TrackInfo) (Decoder, error)

// DefaultInputSlots is the input queue depth of the PCM decoder.
const DefaultInputSlots = 4

// pcmDecoder passes PCM packets through, announcing their format before the
// first buffer and whenever it changes.
type pcmDecoder struct {
	queue   []Packet
	slots   int
	current audio.Format
	known   bool

	eos          bool
	eosDelivered bool
	closed       bool
}

// NewPCMDecoder returns a decoder for PCM packets carrying their own
// Format. It never blocks, so Drain ignores its timeout.
func NewPCMDecoder(track TrackInfo) (Decoder, error) {
	if err := track.Format.Validate(); err != nil {
		return nil, fmt.Errorf("track %d: %w", track.Index, err)
	}

	return &pcmDecoder{
		queue: make([]Packet, 0, DefaultInputSlots),
		slots: DefaultInputSlots,
	}, nil
}

func (d *pcmDecoder) Feed(p Packet) error {
	switch {
	case d.closed:
		return ErrDecoderClosed
	case d.eos:
		return ErrEndOfStream
	case len(d.queue) >= d.slots:
		return ErrTryAgain
	}

	if err := p.Format.Validate(); err != nil {
		return fmt.Errorf("packet at %s: %w", p.Timestamp, err)
	}

	d.queue = append(d.queue, p)

	return nil
}

func (d *pcmDecoder) FeedEOS() error {
	if d.closed {
		return ErrDecoderClosed
	}
	d.eos = true

	return nil
}

func (d *pcmDecoder) Drain(time.Duration) (Output, error) {
	if d.closed {
		return Output{}, ErrDecoderClosed
	}
	if d.eosDelivered {
		return Output{}, ErrEndOfStream
	}

	if len(d.queue) == 0 {
		if !d.eos {
			return Output{Kind: OutputTryAgain}, nil
		}
		d.eosDelivered = true
		return Output{Kind: OutputBuffer, Format: d.current, EOS: true}, nil
	}

	head := d.queue[0]
	if !d.known || head.Format != d.current {
		d.current = head.Format
		d.known = true
		return Output{Kind: OutputFormatChanged, Format: d.current}, nil
	}

	n := copy(d.queue, d.queue[1:])
	d.queue[n] = Packet{}
	d.queue = d.queue[:n]

	out := Output{
		Kind:      OutputBuffer,
		Format:    head.Format,
		Data:      head.Data,
		Timestamp: head.Timestamp,
	}
	if d.eos && len(d.queue) == 0 {
		out.EOS = true
		d.eosDelivered = true
	}

	return out, nil
}

func (d *pcmDecoder) Close() error {
	d.closed = true
	d.queue = nil

	return nil
}
