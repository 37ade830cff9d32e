// SPDX-License-Identifier: EPL-2.0

package tonemp3

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/formats"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/metadata"
	"github.com/ik5/tonemp3/mp3enc"
)

// Options tune a conversion. The zero value converts with the defaults:
// 128 kbps, quality 6, source channels capped at stereo, source rate fitted
// to the nearest MP3 rate.
type Options struct {
	// Channels of the output, 1 or 2. Zero keeps the source channel
	// count, capped at 2.
	Channels int
	// ChannelMap selects source channels for a multi-channel output.
	// Indices past the last source channel are clamped to it.
	ChannelMap audio.ChannelMap
	// Bitrate in kbps; zero selects mp3enc.DefaultBitrate.
	Bitrate int
	// Quality 1 (best) to 9 (fastest); zero selects
	// mp3enc.DefaultQuality.
	Quality int
	// SampleRate forces the output rate. It must be one of SampleRates.
	SampleRate int
	// SampleRates the engine can produce, ascending. Nil selects
	// mp3enc.ShineSampleRates for the default engine and
	// mp3enc.SupportedSampleRates when NewEngine is set.
	SampleRates []int

	// Metadata fields override those read from the source.
	Metadata metadata.Track
	// SkipMetadata disables reading tags from the source.
	SkipMetadata bool

	// OnProgress receives values in [0, 1]; 1 is delivered once, after
	// the output was synced.
	OnProgress func(p float64)
	// AsyncProgress delivers OnProgress on its own goroutine so a slow
	// callback cannot stall decoding.
	AsyncProgress bool

	Logger *slog.Logger

	// Registry resolves the source container; nil uses every bundled
	// format.
	Registry *media.Registry
	// NewDecoder creates the decoder for the probed track; nil passes PCM
	// packets through.
	NewDecoder media.DecoderFactory
	// NewEngine opens the MP3 encoder; nil uses the shine engine.
	NewEngine   mp3enc.EngineFactory
	PollTimeout time.Duration
}

// Validate reports option values no conversion could honour.
func (o Options) Validate() error {
	if o.Channels < 0 || o.Channels > 2 {
		return fmt.Errorf("%w: channels %d, want 0, 1 or 2", ErrInvalidOptions, o.Channels)
	}
	if o.Bitrate < 0 {
		return fmt.Errorf("%w: bitrate %d", ErrInvalidOptions, o.Bitrate)
	}
	if o.Quality < 0 || o.Quality > 9 {
		return fmt.Errorf("%w: quality %d, want 1-9 or 0 for the default", ErrInvalidOptions, o.Quality)
	}
	for _, r := range o.SampleRates {
		if !slices.Contains(mp3enc.SupportedSampleRates, r) {
			return fmt.Errorf("%w: sample rate %d is not an MP3 rate", ErrInvalidOptions, r)
		}
	}
	if rates := o.sampleRates(); o.SampleRate != 0 && !slices.Contains(rates, o.SampleRate) {
		return fmt.Errorf("%w: sample rate %d, want one of %v", ErrInvalidOptions, o.SampleRate, rates)
	}
	for _, c := range o.ChannelMap {
		if c < 0 {
			return fmt.Errorf("%w: negative channel index in map %v", ErrInvalidOptions, o.ChannelMap)
		}
	}

	return nil
}

// sampleRates returns the rates the configured engine can produce.
func (o Options) sampleRates() []int {
	switch {
	case len(o.SampleRates) > 0:
		return o.SampleRates
	case o.NewEngine == nil:
		return mp3enc.ShineSampleRates
	default:
		return mp3enc.SupportedSampleRates
	}
}

func (o Options) withDefaults() Options {
	o.SampleRates = o.sampleRates()
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Registry == nil {
		o.Registry = formats.NewRegistry()
	}
	if o.NewDecoder == nil {
		o.NewDecoder = media.NewPCMDecoder
	}
	if o.NewEngine == nil {
		o.NewEngine = mp3enc.NewShineEngine
	}

	return o
}

// outputFormat decides the encoder format for decoded PCM in f.
func (o Options) outputFormat(f audio.Format) audio.Format {
	channels := o.Channels
	if channels == 0 {
		channels = min(f.Channels, 2)
	}

	rate := o.SampleRate
	if rate == 0 {
		rate = mp3enc.NearestSampleRate(o.sampleRates(), f.SampleRate)
	}

	return audio.Format{SampleRate: rate, Channels: channels, Representation: audio.Int16}
}
