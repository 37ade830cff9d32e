// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// DecodeInt16LE reads little-endian 16-bit samples from b into dst.
// A trailing odd byte is ignored.
func DecodeInt16LE(dst []int16, b []byte) []int16 {
	n := len(b) / 2
	if cap(dst) < n {
		dst = make([]int16, n)
	}
	dst = dst[:n]

	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}

	return dst
}

// DecodeFloat32LE reads little-endian IEEE-754 samples from b into dst.
// Trailing bytes that do not form a whole sample are ignored.
func DecodeFloat32LE(dst []float32, b []byte) []float32 {
	n := len(b) / 4
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}

	return dst
}

// AppendInt16LE appends samples to dst as little-endian 16-bit PCM.
func AppendInt16LE(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(s))
	}

	return dst
}

// AppendFloat32LE appends samples to dst as little-endian IEEE-754 floats.
func AppendFloat32LE(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
	}

	return dst
}

// ScaleToInt16 reduces (or widens) a signed integer sample of the given bit
// depth to 16 bits. Samples deeper than 16 bits keep their most significant
// bits.
func ScaleToInt16(v int32, bitDepth int) int16 {
	switch {
	case bitDepth == 16:
		return int16(v)
	case bitDepth > 16:
		return int16(v >> (bitDepth - 16))
	case bitDepth > 0:
		return int16(v << (16 - bitDepth))
	default:
		return 0
	}
}

// AppendPCMAsInt16LE converts little-endian integer PCM of bitDepth bits to
// 16-bit little-endian PCM. 8-bit input is treated as unsigned, as RIFF
// stores it.
func AppendPCMAsInt16LE(dst []byte, b []byte, bitDepth int) []byte {
	switch bitDepth {
	case 8:
		for _, u := range b {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(int(u)-128)<<8))
		}
	case 16:
		dst = append(dst, b[:len(b)/2*2]...)
	case 24:
		for i := 0; i+3 <= len(b); i += 3 {
			v := int32(b[i]) | int32(b[i+1])<<8 | int32(int8(b[i+2]))<<16
			dst = binary.LittleEndian.AppendUint16(dst, uint16(ScaleToInt16(v, 24)))
		}
	case 32:
		for i := 0; i+4 <= len(b); i += 4 {
			v := int32(binary.LittleEndian.Uint32(b[i:]))
			dst = binary.LittleEndian.AppendUint16(dst, uint16(ScaleToInt16(v, 32)))
		}
	}

	return dst
}
