// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

// MIMEType is the type the registry sniffs for native FLAC streams.
const MIMEType = "audio/flac"

// Extensions handled by this package.
var Extensions = []string{".flac"}

// frameReader is an interface for flac.Stream to allow testing
type frameReader interface {
	ParseNext() (*frame.Frame, error)
}

type demuxer struct {
	media.SingleTrack

	dec      frameReader
	bitDepth int
	format   audio.Format

	frames int64
	done   bool
}

func newDemuxer(dec frameReader, info media.TrackInfo) *demuxer {
	return &demuxer{
		SingleTrack: media.NewSingleTrack(info),
		dec:         dec,
		bitDepth:    info.BitDepth,
		format:      info.Format,
	}
}

// Close releases the demuxer. The source stays open; its owner closes it.
func (d *demuxer) Close() error {
	d.done = true
	return nil
}

// ReadPacket returns one FLAC frame as interleaved 16-bit PCM.
func (d *demuxer) ReadPacket() (media.Packet, error) {
	if err := d.CheckSelected(); err != nil {
		return media.Packet{}, err
	}
	if d.done {
		return media.Packet{}, io.EOF
	}

	f, err := d.dec.ParseNext()
	if errors.Is(err, io.EOF) {
		d.done = true
		return media.Packet{}, io.EOF
	}
	if err != nil {
		return media.Packet{}, fmt.Errorf("decoding FLAC frame: %w", err)
	}

	channels := d.format.Channels
	if len(f.Subframes) != channels {
		return media.Packet{}, fmt.Errorf("%w: %d subframes, %d channels", ErrChannelMismatch, len(f.Subframes), channels)
	}

	n := len(f.Subframes[0].Samples)
	for _, sf := range f.Subframes[1:] {
		n = min(n, len(sf.Samples))
	}

	data := make([]byte, 0, n*channels*2)
	for i := range n {
		for _, sf := range f.Subframes {
			data = binary.LittleEndian.AppendUint16(data, uint16(utils.ScaleToInt16(sf.Samples[i], d.bitDepth)))
		}
	}

	p := media.Packet{
		Data:      data,
		Timestamp: media.FramesToDuration(d.frames, d.format.SampleRate),
		Format:    d.format,
	}
	d.frames += int64(n)

	return p, nil
}

// Container opens native FLAC streams. Samples of any depth from 4 to 32
// bits are delivered as 16-bit PCM.
type Container struct{}

func (Container) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	// flac.New skips every metadata block but StreamInfo; the metadata
	// package parses them separately.
	stream, err := flac.New(rs)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	si := stream.Info
	bitDepth := int(si.BitsPerSample)
	if bitDepth < 4 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	info := media.TrackInfo{
		MIME: MIMEType,
		Format: audio.Format{
			SampleRate:     int(si.SampleRate),
			Channels:       int(si.NChannels),
			Representation: audio.Int16,
		},
		BitDepth: bitDepth,
	}
	if err := info.Format.Validate(); err != nil {
		return nil, fmt.Errorf("stream info: %w", err)
	}
	if si.NSamples > 0 {
		info.Duration = media.FramesToDuration(int64(si.NSamples), info.Format.SampleRate)
	}

	return newDemuxer(stream, info), nil
}
