// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

const (
	// MIMEType is the type the registry sniffs for Ogg streams carrying
	// Vorbis audio.
	MIMEType = "audio/ogg"

	// PacketFrames is the number of frames per packet.
	PacketFrames = 4096
)

// Extensions handled by this package.
var Extensions = []string{".ogg", ".oga"}

// oggReader is an interface for oggvorbis.Reader to allow testing.
// Read fills whole frames and returns the number of samples written.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type demuxer struct {
	media.SingleTrack

	dec    oggReader
	format audio.Format
	buf    []float32

	frames int64
	done   bool
}

func newDemuxer(dec oggReader, info media.TrackInfo) *demuxer {
	return &demuxer{
		SingleTrack: media.NewSingleTrack(info),
		dec:         dec,
		format:      info.Format,
		buf:         make([]float32, PacketFrames*info.Format.Channels),
	}
}

func (d *demuxer) Close() error {
	d.done = true
	return nil
}

func (d *demuxer) ReadPacket() (media.Packet, error) {
	if err := d.CheckSelected(); err != nil {
		return media.Packet{}, err
	}

	channels := d.format.Channels
	n := 0
	for !d.done && n < len(d.buf) {
		m, err := d.dec.Read(d.buf[n:])
		n += m
		if errors.Is(err, io.EOF) {
			d.done = true
			break
		}
		if err != nil {
			return media.Packet{}, fmt.Errorf("decoding Vorbis: %w", err)
		}
		if m == 0 {
			break
		}
	}

	n = n / channels * channels
	if n == 0 {
		d.done = true
		return media.Packet{}, io.EOF
	}

	p := media.Packet{
		Data:      utils.AppendFloat32LE(make([]byte, 0, n*4), d.buf[:n]),
		Timestamp: media.FramesToDuration(d.frames, d.format.SampleRate),
		Format:    d.format,
	}
	d.frames += int64(n / channels)

	return p, nil
}

// Container opens Ogg Vorbis streams, delivering float32 samples already
// clamped to [-1, 1] by the decoder.
type Container struct{}

func (Container) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := media.TrackInfo{
		MIME: MIMEType,
		Format: audio.Format{
			SampleRate:     dec.SampleRate(),
			Channels:       dec.Channels(),
			Representation: audio.Float32,
		},
	}
	if err := info.Format.Validate(); err != nil {
		return nil, fmt.Errorf("vorbis header: %w", err)
	}
	if l := dec.Length(); l > 0 {
		info.Duration = media.FramesToDuration(l, info.Format.SampleRate)
	}

	return newDemuxer(dec, info), nil
}
