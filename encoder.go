// SPDX-License-Identifier: EPL-2.0

package tonemp3

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/mp3enc"
)

// encodeSink conditions decoded frames, fits them to the encoder rate and
// writes the compressed bytes in order.
type encodeSink struct {
	opts    Options
	w       io.Writer
	log     *slog.Logger
	session *mp3enc.Session

	conditioner *audio.Conditioner
	resampler   *audio.Resampler
	out         audio.Format
}

func newEncodeSink(opts Options, w io.Writer, log *slog.Logger) *encodeSink {
	return &encodeSink{
		opts:    opts,
		w:       w,
		log:     log,
		session: mp3enc.NewSession(opts.NewEngine),
	}
}

// Configure opens the encoder for the first decoded format.
func (e *encodeSink) Configure(in audio.Format) error {
	out := e.opts.outputFormat(in)

	// The resampler works on float samples; the encoder takes either.
	target := audio.Int16
	if out.SampleRate != in.SampleRate {
		target = audio.Float32
		e.resampler = audio.NewResampler(in.SampleRate, out.SampleRate, out.Channels)
	}

	c, err := audio.NewConditioner(out.Channels, e.opts.ChannelMap, target)
	if err != nil {
		return err
	}
	e.conditioner = c
	e.out = out

	params := mp3enc.ParamsFor(out, e.opts.Bitrate, e.opts.Quality)
	if err := e.session.Configure(params); err != nil {
		return err
	}

	e.log.Debug("encoder configured",
		"sample_rate", out.SampleRate,
		"channels", out.Channels,
		"bitrate", params.Bitrate,
		"quality", params.Quality,
		"resample_from", in.SampleRate,
	)

	return nil
}

func (e *encodeSink) WriteFrame(fr audio.Frame) error {
	c, err := e.conditioner.Condition(fr)
	if err != nil {
		return err
	}

	if e.resampler != nil {
		c = audio.Frame{
			Format:  audio.Format{SampleRate: e.out.SampleRate, Channels: e.out.Channels, Representation: audio.Float32},
			Float32: e.resampler.Process(c.Float32),
		}
	}

	b, err := e.session.Encode(c)
	if err != nil {
		return err
	}

	return e.write(b)
}

// Finish drains the resampler and the encoder.
func (e *encodeSink) Finish() error {
	if e.resampler != nil {
		tail := e.resampler.Flush()
		if len(tail) > 0 {
			b, err := e.session.Encode(audio.Frame{
				Format:  audio.Format{SampleRate: e.out.SampleRate, Channels: e.out.Channels, Representation: audio.Float32},
				Float32: tail,
			})
			if err != nil {
				return err
			}
			if err := e.write(b); err != nil {
				return err
			}
		}
	}

	b, err := e.session.Finish()
	if err != nil {
		return err
	}

	return e.write(b)
}

func (e *encodeSink) Close() error {
	return e.session.Close()
}

func (e *encodeSink) write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("write mp3: %w", err)
	}

	return nil
}
