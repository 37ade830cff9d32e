// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

const (
	// MIMEType is the type the registry sniffs for FORM/AIFF content.
	MIMEType = "audio/aiff"

	// PacketFrames is the number of frames per packet.
	PacketFrames = 4096
)

// Extensions handled by this package.
var Extensions = []string{".aiff", ".aif"}

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type demuxer struct {
	media.SingleTrack

	dec      aiffReader
	bitDepth int
	format   audio.Format
	intBuf   *goaudio.IntBuffer

	frames int64
	done   bool
}

func newDemuxer(dec aiffReader, info media.TrackInfo) *demuxer {
	return &demuxer{
		SingleTrack: media.NewSingleTrack(info),
		dec:         dec,
		bitDepth:    info.BitDepth,
		format:      info.Format,
		intBuf: &goaudio.IntBuffer{
			Data:   make([]int, PacketFrames*info.Format.Channels),
			Format: dec.Format(),
		},
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
	if d.done {
		return media.Packet{}, io.EOF
	}

	d.intBuf.Data = d.intBuf.Data[:cap(d.intBuf.Data)]
	n, err := d.dec.PCMBuffer(d.intBuf)
	eof := errors.Is(err, io.EOF)
	if err != nil && !eof {
		return media.Packet{}, fmt.Errorf("reading PCM: %w", err)
	}

	channels := d.format.Channels
	n = n / channels * channels
	if n == 0 {
		d.done = true
		return media.Packet{}, io.EOF
	}
	if eof {
		d.done = true
	}

	data := make([]byte, 0, n*2)
	for _, v := range d.intBuf.Data[:n] {
		data = binary.LittleEndian.AppendUint16(data, uint16(utils.ScaleToInt16(int32(v), d.bitDepth)))
	}

	p := media.Packet{
		Data:      data,
		Timestamp: media.FramesToDuration(d.frames, d.format.SampleRate),
		Format:    d.format,
	}
	d.frames += int64(n / channels)

	return p, nil
}

// Container opens AIFF files with integer PCM of 8 to 32 bits, delivered
// as 16-bit samples.
type Container struct{}

func (Container) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	f := dec.Format()
	if f == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	format := audio.Format{
		SampleRate:     f.SampleRate,
		Channels:       f.NumChannels,
		Representation: audio.Int16,
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	// Duration is informational; an unreadable one only disables progress.
	duration, err := dec.Duration()
	if err != nil {
		duration = 0
	}

	return newDemuxer(dec, media.TrackInfo{
		MIME:     MIMEType,
		Format:   format,
		BitDepth: bitDepth,
		Duration: duration,
	}), nil
}
