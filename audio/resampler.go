// SPDX-License-Identifier: EPL-2.0

package audio

// Resampler converts interleaved float32 PCM between sample rates using
// cubic interpolation. It is push driven: callers hand it decoded blocks in
// order and collect whatever output those blocks make available.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	srcRate  int64
	dstRate  int64
	channels int

	// Source frames not yet consumed; buf[0] is the oldest frame still
	// needed as the t-1 neighbour.
	buf []float32
	// dropped counts source frames discarded from the front of buf.
	dropped int64
	// produced counts output frames emitted so far. The source position of
	// output frame k is k*srcRate/dstRate, computed exactly in integers.
	produced int64

	// Simple low-pass filter state for anti-aliasing (when downsampling)
	filterState []float32
	primed      bool
	useFilter   bool
	filterAlpha float32
}

// NewResampler returns a resampler from srcRate to dstRate for channels
// interleaved channels.
func NewResampler(srcRate, dstRate, channels int) *Resampler {
	// Enable simple one-pole low-pass filter when downsampling
	useFilter := srcRate > dstRate
	var filterAlpha float32
	if useFilter {
		filterAlpha = 0.5
	}

	return &Resampler{
		srcRate:     int64(srcRate),
		dstRate:     int64(dstRate),
		channels:    channels,
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float32, channels),
	}
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }

// Process appends in (whole frames only) and returns the output frames that
// can be interpolated without looking past the end of the input so far.
func (r *Resampler) Process(in []float32) []float32 {
	frames := len(in) / r.channels
	for f := range frames {
		base := f * r.channels
		for c := range r.channels {
			x := in[base+c]
			if r.useFilter {
				if !r.primed {
					// Initialize filter state with first sample to avoid warm-up transients
					r.filterState[c] = x
				}
				// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
				x = r.filterAlpha*x + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = x
			}
			r.buf = append(r.buf, x)
		}
		r.primed = true
	}

	return r.run(false)
}

// Flush emits the remaining output, repeating the last input frame where
// the interpolation window runs past the end of the stream.
func (r *Resampler) Flush() []float32 {
	return r.run(true)
}

func (r *Resampler) run(flush bool) []float32 {
	ch := r.channels
	n := len(r.buf) / ch
	if n == 0 {
		return nil
	}

	at := func(k int) int { return min(max(k, 0), n-1) * ch }

	var out []float32
	for {
		num := r.produced * r.srcRate
		i := int(num/r.dstRate - r.dropped)
		if flush {
			if i >= n {
				break
			}
		} else if i+2 >= n {
			break
		}

		alpha := float32(num%r.dstRate) / float32(r.dstRate)

		i0, i1, i2, i3 := at(i-1), at(i), at(i+1), at(i+2)
		for c := range ch {
			out = append(out, cubicInterpolate(r.buf[i0+c], r.buf[i1+c], r.buf[i2+c], r.buf[i3+c], alpha))
		}
		r.produced++
	}

	// Keep one frame behind the next read position for the t-1 neighbour.
	next := int(r.produced*r.srcRate/r.dstRate - r.dropped)
	drop := min(next-1, n)
	if drop > 0 {
		r.buf = append(r.buf[:0], r.buf[drop*ch:]...)
		r.dropped += int64(drop)
	}

	return out
}

// cubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func cubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
