// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// downmixFloat32 averages every frame of src into one sample.
func downmixFloat32(src []float32, channels int) []float32 {
	frames := len(src) / channels
	dst := make([]float32, frames)

	// Optimize: cache division result
	invChannels := float32(1.0) / float32(channels)

	// Unrolled loop for common cases
	switch channels {
	case 1:
		copy(dst, src)
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1 // f * 2
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2 // f * 4
			sum := src[idx] + src[idx+1] + src[idx+2] + src[idx+3]
			dst[f] = sum * 0.25
		}
	default: // Generic path
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += src[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}

	return dst
}

// downmixInt16 averages every frame of src into one sample, rounding the
// mean half away from zero.
func downmixInt16(src []int16, channels int) []int16 {
	frames := len(src) / channels
	dst := make([]int16, frames)

	switch channels {
	case 1:
		copy(dst, src)
	case 2:
		for f := range frames {
			idx := f << 1
			sum := int32(src[idx]) + int32(src[idx+1])
			dst[f] = roundMean(sum, 2)
		}
	default:
		for f := range frames {
			var sum int32
			baseIdx := f * channels
			for c := range channels {
				sum += int32(src[baseIdx+c])
			}
			dst[f] = roundMean(sum, channels)
		}
	}

	return dst
}

func roundMean(sum int32, n int) int16 {
	return int16(math.Round(float64(sum) / float64(n)))
}
