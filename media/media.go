// SPDX-License-Identifier: EPL-2.0

package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/ik5/tonemp3/audio"
)

// TrackInfo describes one elementary stream of a container.
type TrackInfo struct {
	Index int
	// MIME type of the stream, e.g. "audio/flac".
	MIME   string
	Format audio.Format
	// BitDepth of the stored samples, 0 when not meaningful (lossy codecs).
	BitDepth int
	// Duration of the stream, 0 when unknown.
	Duration time.Duration
}

// IsAudio reports whether the track belongs to the audio family.
func (t TrackInfo) IsAudio() bool {
	return strings.HasPrefix(strings.ToLower(t.MIME), "audio/")
}

func (t TrackInfo) String() string {
	return fmt.Sprintf("#%d %s %s %s", t.Index, t.MIME, t.Format, t.Duration)
}

// Packet is one access unit read from the selected track.
type Packet struct {
	// Data holds the payload; its meaning depends on Format.
	Data []byte
	// Timestamp of the first sample in the packet.
	Timestamp time.Duration
	// Format of Data. PCM demuxers fill it in; a compressed stream leaves
	// it to the decoder.
	Format audio.Format
}

// Demuxer splits a container into tracks and reads packets of the selected
// one.
type Demuxer interface {
	Tracks() []TrackInfo
	SelectTrack(index int) error
	// ReadPacket returns io.EOF once the selected track is exhausted.
	ReadPacket() (Packet, error)
	Close() error
}

// Probe selects the first audio track of d.
func Probe(d Demuxer) (TrackInfo, error) {
	for _, t := range d.Tracks() {
		if !t.IsAudio() {
			continue
		}

		if err := d.SelectTrack(t.Index); err != nil {
			return TrackInfo{}, fmt.Errorf("selecting track %d: %w", t.Index, err)
		}

		return t, nil
	}

	return TrackInfo{}, ErrNoAudioTrack
}

// FramesToDuration converts a frame count at sampleRate to a duration
// without overflowing for any realistic stream length.
func FramesToDuration(frames int64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	rate := int64(sampleRate)
	secs := frames / rate
	rem := frames % rate

	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(rate)
}

// SingleTrack is the track bookkeeping for containers that hold exactly one
// audio stream. Demuxers embed it.
type SingleTrack struct {
	info     TrackInfo
	selected bool
}

// NewSingleTrack returns bookkeeping for info, which is always index 0.
func NewSingleTrack(info TrackInfo) SingleTrack {
	info.Index = 0
	return SingleTrack{info: info}
}

func (s *SingleTrack) Tracks() []TrackInfo { return []TrackInfo{s.info} }
func (s *SingleTrack) Info() TrackInfo     { return s.info }
func (s *SingleTrack) Selected() bool      { return s.selected }

func (s *SingleTrack) SelectTrack(index int) error {
	if index != 0 {
		return fmt.Errorf("%w: %d", ErrTrackOutOfRange, index)
	}
	s.selected = true

	return nil
}

// CheckSelected returns ErrNoTrackSelected until SelectTrack succeeds.
func (s *SingleTrack) CheckSelected() error {
	if !s.selected {
		return ErrNoTrackSelected
	}
	return nil
}
