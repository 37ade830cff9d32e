// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"time"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

// DefaultPacketFrames is the packet size of a new Demuxer.
const DefaultPacketFrames = 1024

// Waveform returns the sample value in [-1, 1] of a frame and channel.
type Waveform func(frame, channel int) float32

// Silence generates zeros.
func Silence() Waveform {
	return func(int, int) float32 { return 0 }
}

// Constant generates v on every channel.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Sine generates a tone of frequency hz at sampleRate on every channel.
func Sine(sampleRate int, hz float64) Waveform {
	return func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(0.5 * math.Sin(2*math.Pi*hz*t))
	}
}

// Samples renders total frames of w as interleaved int16.
func Samples(channels, total int, w Waveform) []int16 {
	out := make([]int16, 0, total*channels)
	for i := range total {
		for ch := range channels {
			out = append(out, utils.Float32ToInt16(w(i, ch)))
		}
	}

	return out
}

// Demuxer is a single-track media.Demuxer producing synthetic PCM packets.
type Demuxer struct {
	media.SingleTrack

	format       audio.Format
	total        int
	generated    int
	packetFrames int
	waveform     Waveform

	// FailAt makes ReadPacket return Err once FailAt packets were read.
	FailAt int
	Err    error

	packets int
	closed  bool
}

// NewDemuxer returns a demuxer of total frames in format f. The track
// reports its duration.
func NewDemuxer(f audio.Format, total int, w Waveform) *Demuxer {
	return &Demuxer{
		SingleTrack: media.NewSingleTrack(media.TrackInfo{
			MIME:     "audio/raw",
			Format:   f,
			BitDepth: f.Representation.BytesPerSample() * 8,
			Duration: media.FramesToDuration(int64(total), f.SampleRate),
		}),
		format:       f,
		total:        total,
		packetFrames: DefaultPacketFrames,
		waveform:     w,
	}
}

// NewSilentDemuxer is NewDemuxer with silence.
func NewSilentDemuxer(f audio.Format, total int) *Demuxer {
	return NewDemuxer(f, total, Silence())
}

// NewSineDemuxer is NewDemuxer with a tone.
func NewSineDemuxer(f audio.Format, total int, hz float64) *Demuxer {
	return NewDemuxer(f, total, Sine(f.SampleRate, hz))
}

// SetPacketFrames changes the number of frames per packet.
func (d *Demuxer) SetPacketFrames(n int) { d.packetFrames = n }

// Reset rewinds the generator.
func (d *Demuxer) Reset() {
	d.generated = 0
	d.packets = 0
}

func (d *Demuxer) ReadPacket() (media.Packet, error) {
	if d.closed {
		return media.Packet{}, errors.New("audiotest: demuxer closed")
	}
	if err := d.CheckSelected(); err != nil {
		return media.Packet{}, err
	}
	if d.Err != nil && d.packets >= d.FailAt {
		return media.Packet{}, d.Err
	}
	if d.generated >= d.total {
		return media.Packet{}, io.EOF
	}

	n := min(d.packetFrames, d.total-d.generated)
	data := make([]byte, 0, n*d.format.FrameSize())
	for i := range n {
		for ch := range d.format.Channels {
			v := d.waveform(d.generated+i, ch)
			if d.format.Representation == audio.Float32 {
				data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
			} else {
				data = binary.LittleEndian.AppendUint16(data, uint16(utils.Float32ToInt16(v)))
			}
		}
	}

	p := media.Packet{
		Data:      data,
		Timestamp: media.FramesToDuration(int64(d.generated), d.format.SampleRate),
		Format:    d.format,
	}
	d.generated += n
	d.packets++

	return p, nil
}

func (d *Demuxer) Close() error {
	d.closed = true
	return nil
}

// Closed reports whether Close was called.
func (d *Demuxer) Closed() bool { return d.closed }

// Duration returns the track duration.
func (d *Demuxer) Duration() time.Duration { return d.Info().Duration }
