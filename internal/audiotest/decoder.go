// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"time"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

// Step is one scripted Drain result.
type Step struct {
	Out media.Output
	Err error
}

// FormatStep announces f.
func FormatStep(f audio.Format) Step {
	return Step{Out: media.Output{Kind: media.OutputFormatChanged, Format: f}}
}

// BufferStep delivers samples in f at ts.
func BufferStep(f audio.Format, ts time.Duration, samples ...int16) Step {
	data := utils.AppendInt16LE(nil, samples)
	if f.Representation == audio.Float32 {
		data = utils.AppendFloat32LE(nil, utils.Int16sToFloat32s(nil, samples))
	}

	return Step{Out: media.Output{Kind: media.OutputBuffer, Format: f, Data: data, Timestamp: ts}}
}

// EOSStep is a buffer step carrying the end-of-stream flag.
func EOSStep(f audio.Format, ts time.Duration, samples ...int16) Step {
	s := BufferStep(f, ts, samples...)
	s.Out.EOS = true
	return s
}

// TryAgainStep reports no output.
func TryAgainStep() Step {
	return Step{Out: media.Output{Kind: media.OutputTryAgain}}
}

// ScriptedDecoder is a media.Decoder whose Drain replays Steps in order and
// then answers try-again forever. Fed packets are recorded, not decoded.
type ScriptedDecoder struct {
	Steps []Step
	// FeedErrs are returned by successive Feed calls; a nil entry accepts.
	FeedErrs []error

	Fed     []media.Packet
	EOSFed  bool
	Closed  bool
	Drains  int
	Timeout time.Duration
}

func (d *ScriptedDecoder) Feed(p media.Packet) error {
	if len(d.FeedErrs) > 0 {
		err := d.FeedErrs[0]
		d.FeedErrs = d.FeedErrs[1:]
		if err != nil {
			return err
		}
	}

	d.Fed = append(d.Fed, p)

	return nil
}

func (d *ScriptedDecoder) FeedEOS() error {
	d.EOSFed = true
	return nil
}

func (d *ScriptedDecoder) Drain(timeout time.Duration) (media.Output, error) {
	d.Timeout = timeout
	if d.Drains >= len(d.Steps) {
		d.Drains++
		return media.Output{Kind: media.OutputTryAgain}, nil
	}

	s := d.Steps[d.Drains]
	d.Drains++

	return s.Out, s.Err
}

func (d *ScriptedDecoder) Close() error {
	d.Closed = true
	return nil
}
