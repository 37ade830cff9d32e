// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"bytes"
	"encoding/binary"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

// pictureBody encodes a FLAC PICTURE block body.
func pictureBody(typ uint32, mime string, data []byte) []byte {
	var b bytes.Buffer
	be := func(v uint32) { _ = binary.Write(&b, binary.BigEndian, v) }

	be(typ)
	be(uint32(len(mime)))
	b.WriteString(mime)
	be(0) // description
	be(1) // width
	be(1) // height
	be(32)
	be(0)
	be(uint32(len(data)))
	b.Write(data)

	return b.Bytes()
}

// commentBody encodes a VORBIS_COMMENT block body.
func commentBody(comments ...string) []byte {
	var b bytes.Buffer
	le := func(v uint32) { _ = binary.Write(&b, binary.LittleEndian, v) }

	vendor := "tonemp3 test"
	le(uint32(len(vendor)))
	b.WriteString(vendor)
	le(uint32(len(comments)))
	for _, c := range comments {
		le(uint32(len(c)))
		b.WriteString(c)
	}

	return b.Bytes()
}

// buildFLAC returns a FLAC stream holding only metadata blocks.
func buildFLAC(comments []string, pictures ...[]byte) []byte {
	var b bytes.Buffer
	b.WriteString("fLaC")

	streamInfo := make([]byte, 34)
	binary.BigEndian.PutUint16(streamInfo[0:], 4096)
	binary.BigEndian.PutUint16(streamInfo[2:], 4096)
	// 20-bit rate, 3-bit channels-1, 5-bit bits-1, 36-bit sample count
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36
	binary.BigEndian.PutUint64(streamInfo[10:], packed)

	blocks := []struct {
		typ  byte
		body []byte
	}{
		{typ: 0, body: streamInfo},
		{typ: 4, body: commentBody(comments...)},
	}
	for _, p := range pictures {
		blocks = append(blocks, struct {
			typ  byte
			body []byte
		}{typ: 6, body: p})
	}

	for i, blk := range blocks {
		head := blk.typ
		if i == len(blocks)-1 {
			head |= 0x80
		}
		n := len(blk.body)
		b.Write([]byte{head, byte(n >> 16), byte(n >> 8), byte(n)})
		b.Write(blk.body)
	}

	return b.Bytes()
}
