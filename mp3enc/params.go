// SPDX-License-Identifier: EPL-2.0

package mp3enc

import (
	"fmt"
	"slices"

	"github.com/ik5/tonemp3/audio"
)

const (
	DefaultBitrate = 128
	DefaultQuality = 6
)

// SupportedSampleRates lists every rate an MPEG-1, MPEG-2 or MPEG-2.5
// layer III stream can carry, ascending.
var SupportedSampleRates = []int{8000, 11025, 12000, 16000, 22050, 24000, 32000, 44100, 48000}

// Params are fixed for the lifetime of a Session.
type Params struct {
	SampleRate int
	Channels   int
	// Bitrate in kbps, constant.
	Bitrate int
	// Quality 1 (best) to 9 (fastest); ParamsFor turns 0 into
	// DefaultQuality. Engines without a quality knob ignore it.
	Quality int
}

// ParamsFor builds Params for PCM in f. Zero bitrate and quality select the
// defaults.
func ParamsFor(f audio.Format, bitrate, quality int) Params {
	if bitrate == 0 {
		bitrate = DefaultBitrate
	}
	if quality == 0 {
		quality = DefaultQuality
	}

	return Params{
		SampleRate: f.SampleRate,
		Channels:   f.Channels,
		Bitrate:    bitrate,
		Quality:    quality,
	}
}

// Validate checks p against what MP3 can express.
func (p Params) Validate() error {
	if !slices.Contains(SupportedSampleRates, p.SampleRate) {
		return fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, p.SampleRate)
	}
	if p.Channels != 1 && p.Channels != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, p.Channels)
	}
	if p.Bitrate <= 0 || p.Bitrate > 320 {
		return fmt.Errorf("%w: %d kbps", ErrUnsupportedBitrate, p.Bitrate)
	}
	if p.Quality < 0 || p.Quality > 9 {
		return fmt.Errorf("%w: quality %d", ErrEncoderFailure, p.Quality)
	}

	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("%dHz/%dch/%dkbps/q%d", p.SampleRate, p.Channels, p.Bitrate, p.Quality)
}

// NearestSampleRate returns the entry of rates, ascending, closest to rate.
// Ties go to the higher rate. A rate below the slowest entry is doubled
// until it reaches it, so 11025 Hz fits to 22050 Hz, not to 16000 Hz.
func NearestSampleRate(rates []int, rate int) int {
	for rate > 0 && rate < rates[0] {
		rate *= 2
	}

	best := rates[0]
	for _, r := range rates {
		if abs(r-rate) <= abs(best-rate) {
			best = r
		}
	}

	return best
}

// SamplesPerFrame returns the per-channel sample count of one layer III
// frame at rate: 1152 for MPEG-1, 576 for MPEG-2 and 2.5.
func SamplesPerFrame(rate int) int {
	if rate >= 32000 {
		return 1152
	}
	return 576
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
