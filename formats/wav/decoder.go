// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

const (
	// MIMEType is the type the registry sniffs for RIFF/WAVE content.
	MIMEType = "audio/wav"

	// PacketFrames is the number of frames per packet.
	PacketFrames = 4096

	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE
)

// Extensions handled by this package.
var Extensions = []string{".wav", ".wave"}

type demuxer struct {
	media.SingleTrack

	// pcm is limited to the data chunk so trailing chunks never read as audio
	pcm        io.Reader
	float      bool
	bitDepth   int
	frameBytes int
	format     audio.Format

	buf    []byte
	frames int64
}

func (d *demuxer) Close() error {
	d.pcm = nil
	return nil
}

func (d *demuxer) ReadPacket() (media.Packet, error) {
	if err := d.CheckSelected(); err != nil {
		return media.Packet{}, err
	}
	if d.pcm == nil {
		return media.Packet{}, io.EOF
	}

	n, err := io.ReadFull(d.pcm, d.buf)
	n = n / d.frameBytes * d.frameBytes
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return media.Packet{}, io.EOF
		}
		return media.Packet{}, fmt.Errorf("reading PCM: %w", err)
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return media.Packet{}, fmt.Errorf("reading PCM: %w", err)
	}

	var data []byte
	if d.float {
		data = append([]byte(nil), d.buf[:n]...)
	} else {
		data = utils.AppendPCMAsInt16LE(make([]byte, 0, n/(d.bitDepth/8)*2), d.buf[:n], d.bitDepth)
	}

	p := media.Packet{
		Data:      data,
		Timestamp: media.FramesToDuration(d.frames, d.format.SampleRate),
		Format:    d.format,
	}
	d.frames += int64(n / d.frameBytes)

	return p, nil
}

// Container opens RIFF/WAVE files. Integer PCM of 8, 16, 24 or 32 bits is
// delivered as 16-bit samples, IEEE float as 32-bit float samples.
type Container struct{}

func (Container) Open(rs io.ReadSeeker) (media.Demuxer, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)

	var (
		float bool
		rep   audio.Representation
	)
	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
		switch bitDepth {
		case 8, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
		}
		rep = audio.Int16
	case formatFloat:
		if bitDepth != 32 {
			return nil, fmt.Errorf("%w: float %d", ErrUnsupportedBitDepth, bitDepth)
		}
		float = true
		rep = audio.Float32
	default:
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnsupportedWavFormat, dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavLayout
	}

	format := audio.Format{
		SampleRate:     int(dec.SampleRate),
		Channels:       channels,
		Representation: rep,
	}
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	frameBytes := channels * bitDepth / 8
	totalFrames := int64(dec.PCMSize / frameBytes)

	return &demuxer{
		SingleTrack: media.NewSingleTrack(media.TrackInfo{
			MIME:     MIMEType,
			Format:   format,
			BitDepth: bitDepth,
			Duration: media.FramesToDuration(totalFrames, format.SampleRate),
		}),
		pcm:        io.LimitReader(dec.PCMChunk, int64(dec.PCMSize)),
		float:      float,
		bitDepth:   bitDepth,
		frameBytes: frameBytes,
		format:     format,
		buf:        make([]byte, PacketFrames*frameBytes),
	}, nil
}
