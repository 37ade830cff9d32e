// SPDX-License-Identifier: EPL-2.0

package pump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/progress"
)

const (
	DefaultPollTimeout  = 10 * time.Millisecond
	DefaultMaxIdlePolls = 1000
)

// State of the pump loop.
type State int

const (
	StateFeeding State = iota
	StateDraining
	StateFormatPending
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateFeeding:
		return "feeding"
	case StateDraining:
		return "draining"
	case StateFormatPending:
		return "format-pending"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FrameSink receives decoded PCM. Configure is called once, with the first
// format, before any frame.
type FrameSink interface {
	Configure(f audio.Format) error
	WriteFrame(fr audio.Frame) error
}

// Config tunes a Pump. The zero value is usable.
type Config struct {
	// PollTimeout bounds each Drain call.
	PollTimeout time.Duration
	// MaxIdlePolls is how many consecutive try-again answers are
	// tolerated once input is exhausted.
	MaxIdlePolls int
	// Tracker receives buffer timestamps; nil disables progress.
	Tracker *progress.Tracker
	Logger  *slog.Logger
}

// Stats summarizes a finished run.
type Stats struct {
	Format  audio.Format
	Packets int
	Buffers int
	Frames  int64
}

// Pump moves packets from a demuxer through a decoder into a FrameSink,
// one step at a time, in stream order.
type Pump struct {
	demux   media.Demuxer
	decoder media.Decoder
	sink    FrameSink
	cfg     Config
	log     *slog.Logger

	state      State
	pending    *media.Packet
	inputDone  bool
	next       audio.Format
	configured bool
	idle       int
	stats      Stats
}

// New returns a pump in StateFeeding. The demuxer must already have a
// track selected. The pump never closes the demuxer or the decoder.
func New(d media.Demuxer, dec media.Decoder, sink FrameSink, cfg Config) *Pump {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	if cfg.MaxIdlePolls <= 0 {
		cfg.MaxIdlePolls = DefaultMaxIdlePolls
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Pump{
		demux:   d,
		decoder: dec,
		sink:    sink,
		cfg:     cfg,
		log:     log,
		state:   StateFeeding,
	}
}

// Run drives the pump until the decoder delivers its end-of-stream buffer.
func Run(ctx context.Context, d media.Demuxer, dec media.Decoder, sink FrameSink, cfg Config) (Stats, error) {
	p := New(d, dec, sink, cfg)
	err := p.Run(ctx)

	return p.Stats(), err
}

func (p *Pump) State() State { return p.state }

func (p *Pump) Stats() Stats { return p.stats }

// Run loops until StateEnded or the first error.
func (p *Pump) Run(ctx context.Context) error {
	for p.state != StateEnded {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if err := p.Step(); err != nil {
			return err
		}
	}

	if !p.configured {
		return ErrEmptyStream
	}

	return nil
}

// Step performs one transition.
func (p *Pump) Step() error {
	switch p.state {
	case StateFeeding:
		return p.feed()
	case StateDraining:
		return p.drain()
	case StateFormatPending:
		return p.applyFormat(p.next)
	default:
		return nil
	}
}

func (p *Pump) feed() error {
	p.state = StateDraining
	if p.inputDone {
		return nil
	}

	if p.pending == nil {
		pkt, err := p.demux.ReadPacket()
		switch {
		case errors.Is(err, io.EOF):
			p.inputDone = true
			if err := p.decoder.FeedEOS(); err != nil {
				return sourceError("signal end of stream", err)
			}
			p.log.Debug("input exhausted", "packets", p.stats.Packets)
			return nil
		case err != nil:
			return sourceError("read packet", err)
		}
		p.pending = &pkt
		p.stats.Packets++
	}

	err := p.decoder.Feed(*p.pending)
	switch {
	case errors.Is(err, media.ErrTryAgain):
		// keep the packet for the next feed
	case err != nil:
		return sourceError("feed packet", err)
	default:
		p.pending = nil
	}

	return nil
}

func (p *Pump) drain() error {
	out, err := p.decoder.Drain(p.cfg.PollTimeout)
	if err != nil {
		return sourceError("drain", err)
	}

	switch out.Kind {
	case media.OutputTryAgain:
		if !p.inputDone {
			p.idle = 0
			p.state = StateFeeding
			return nil
		}
		p.idle++
		if p.idle > p.cfg.MaxIdlePolls {
			return fmt.Errorf("%w: %d polls after end of input", ErrStalled, p.idle)
		}
		return nil

	case media.OutputFormatChanged:
		p.idle = 0
		p.next = out.Format
		p.state = StateFormatPending
		return nil

	case media.OutputBuffer:
		p.idle = 0
		return p.buffer(out)

	default:
		return sourceError("drain", fmt.Errorf("unexpected output %s", out.Kind))
	}
}

func (p *Pump) buffer(out media.Output) error {
	if len(out.Data) > 0 {
		if !p.configured || out.Format != p.stats.Format {
			if err := p.applyFormat(out.Format); err != nil {
				return err
			}
		}

		fr, err := audio.NewFrame(p.stats.Format, out.Data)
		if err != nil {
			return err
		}
		if err := p.sink.WriteFrame(fr); err != nil {
			return err
		}

		p.stats.Buffers++
		p.stats.Frames += int64(fr.Frames())
		p.cfg.Tracker.Position(out.Timestamp)
	}

	if out.EOS {
		p.state = StateEnded
		p.log.Debug("decoder reached end of stream", "buffers", p.stats.Buffers, "frames", p.stats.Frames)
		return nil
	}

	p.state = StateDraining

	return nil
}

// applyFormat configures the sink on the first format. Later formats may
// only change the sample representation.
func (p *Pump) applyFormat(f audio.Format) error {
	if err := f.Validate(); err != nil {
		return err
	}

	switch {
	case !p.configured:
		if err := p.sink.Configure(f); err != nil {
			return err
		}
		p.configured = true
		p.log.Debug("decoder format", "sample_rate", f.SampleRate, "channels", f.Channels, "representation", f.Representation.String())
	case !p.stats.Format.SameShape(f):
		return fmt.Errorf("%w: %s to %s", ErrFormatChanged, p.stats.Format, f)
	case f != p.stats.Format:
		p.log.Debug("decoder representation changed", "from", p.stats.Format.Representation.String(), "to", f.Representation.String())
	}

	p.stats.Format = f
	if p.state == StateFormatPending {
		p.state = StateDraining
	}

	return nil
}

// sourceError classifies decoder and demuxer failures. A closed source or
// an ended context means the caller cancelled.
func sourceError(op string, err error) error {
	switch {
	case errors.Is(err, os.ErrClosed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrCancelled, op, err)
	case errors.Is(err, media.ErrSourceUnavailable):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%w: %s: %w", media.ErrSourceUnavailable, op, err)
	}
}
