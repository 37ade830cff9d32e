// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
)

const (
	// MIMEType is the type the registry sniffs for MPEG audio.
	MIMEType = "audio/mpeg"

	// PacketFrames is the number of frames per packet.
	PacketFrames = 4096

	// go-mp3 always produces 16-bit little-endian stereo
	channels   = 2
	frameBytes = channels * 2
)

// Extensions handled by this package.
var Extensions = []string{".mp3"}

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type demuxer struct {
	media.SingleTrack

	dec    mp3Reader
	format audio.Format
	buf    []byte

	frames int64
	done   bool
}

func newDemuxer(dec mp3Reader, info media.TrackInfo) *demuxer {
	return &demuxer{
		SingleTrack: media.NewSingleTrack(info),
		dec:         dec,
		format:      info.Format,
		buf:         make([]byte, PacketFrames*frameBytes),
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

	n, err := io.ReadFull(d.dec, d.buf)
	eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
	if err != nil && !eof {
		return media.Packet{}, fmt.Errorf("decoding MPEG audio: %w", err)
	}

	n = n / frameBytes * frameBytes
	if eof {
		d.done = true
	}
	if n == 0 {
		return media.Packet{}, io.EOF
	}

	p := media.Packet{
		Data:      append([]byte(nil), d.buf[:n]...),
		Timestamp: media.FramesToDuration(d.frames, d.format.SampleRate),
		Format:    d.format,
	}
	d.frames += int64(n / frameBytes)

	return p, nil
}

// Container opens MPEG-1/2 Layer III streams. A leading ID3v2 tag is
// skipped by the decoder. Mono streams are delivered as two identical
// channels.
type Container struct{}

func (Container) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := media.TrackInfo{
		MIME: MIMEType,
		Format: audio.Format{
			SampleRate:     dec.SampleRate(),
			Channels:       channels,
			Representation: audio.Int16,
		},
	}
	if l := dec.Length(); l > 0 {
		info.Duration = media.FramesToDuration(l/frameBytes, info.Format.SampleRate)
	}

	return newDemuxer(dec, info), nil
}
