// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	formatPCM   = 1
	formatFloat = 3
)

// WAVInfo holds the LIST/INFO text entries written after the data chunk.
type WAVInfo struct {
	Title  string // INAM
	Artist string // IART
	Album  string // IPRD
	Track  string // ITRK
}

func (i WAVInfo) entries() [][2]string {
	var out [][2]string
	for _, e := range [][2]string{
		{"INAM", i.Title},
		{"IART", i.Artist},
		{"IPRD", i.Album},
		{"ITRK", i.Track},
	} {
		if e[1] != "" {
			out = append(out, e)
		}
	}

	return out
}

// WriteWAV16 writes interleaved 16-bit PCM as a canonical WAV file, the
// fixture every container and conversion test starts from.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	return WriteWAV16Info(w, sampleRate, channels, samples, WAVInfo{})
}

// WriteWAV16Info is WriteWAV16 with a trailing LIST/INFO chunk.
func WriteWAV16Info(w io.Writer, sampleRate, channels int, samples []int16, info WAVInfo) error {
	return write(w, formatPCM, 16, sampleRate, channels, len(samples), info, func(buf []byte, i int) {
		binary.LittleEndian.PutUint16(buf, uint16(samples[i]))
	})
}

// WriteWAVFloat32 writes interleaved IEEE float samples (format tag 3).
func WriteWAVFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	return write(w, formatFloat, 32, sampleRate, channels, len(samples), WAVInfo{}, func(buf []byte, i int) {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(samples[i]))
	})
}

// WriteWAV24 writes interleaved 24-bit PCM; samples hold values in the
// signed 24-bit range.
func WriteWAV24(w io.Writer, sampleRate, channels int, samples []int32) error {
	return write(w, formatPCM, 24, sampleRate, channels, len(samples), WAVInfo{}, func(buf []byte, i int) {
		v := uint32(samples[i])
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
	})
}

func write(w io.Writer, audioFormat, bitsPerSample, sampleRate, channels, count int, info WAVInfo, put func([]byte, int)) error {
	bytesPerSample := bitsPerSample / 8
	byteRate := uint32(sampleRate * channels * bytesPerSample)
	blockAlign := uint16(channels * bytesPerSample)
	dataSize := uint32(count * bytesPerSample)

	list := encodeInfo(info)
	riffSize := 4 + (8 + 16) + (8 + dataSize + dataSize%2) + uint32(len(list))

	// Pre-allocate buffer for entire header (44 bytes)
	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], uint16(audioFormat))
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Write 8KB of samples at a time
	const chunkSize = 8192
	buf := make([]byte, min(count, chunkSize)*bytesPerSample)

	for i := 0; i < count; i += chunkSize {
		end := min(i+chunkSize, count)
		buf = buf[:(end-i)*bytesPerSample]

		for j := i; j < end; j++ {
			put(buf[(j-i)*bytesPerSample:], j)
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	if dataSize%2 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing pad byte: %w", err)
		}
	}

	if len(list) > 0 {
		if _, err := w.Write(list); err != nil {
			return fmt.Errorf("writing LIST chunk: %w", err)
		}
	}

	return nil
}

func encodeInfo(info WAVInfo) []byte {
	entries := info.entries()
	if len(entries) == 0 {
		return nil
	}

	body := []byte("INFO")
	for _, e := range entries {
		size := len(e[1]) + 1
		body = append(body, e[0]...)
		body = binary.LittleEndian.AppendUint32(body, uint32(size))
		body = append(body, e[1]...)
		body = append(body, 0)
		if size%2 == 1 {
			body = append(body, 0)
		}
	}

	out := []byte("LIST")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))

	return append(out, body...)
}
