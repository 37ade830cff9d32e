// SPDX-License-Identifier: EPL-2.0

// Package id3 builds ID3v2.3 tags.
//
// The tag is written once, ahead of the MP3 frame stream, and never edited
// in place, so the builder is a pure function of its input: identical
// metadata always yields identical bytes. Text frames are UTF-16 with a
// little-endian BOM; the cover goes into a single front-cover APIC frame.
package id3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/ik5/tonemp3/metadata"
)

var (
	ErrTagTooLarge  = errors.New("tag does not fit a synchsafe size")
	ErrInvalidText  = errors.New("text cannot be encoded")
	ErrInvalidFrame = errors.New("invalid frame")
)

const (
	// HeaderSize is the fixed length of the tag header.
	HeaderSize = 10
	// MaxSize is the largest body a synchsafe size can describe.
	MaxSize = 1<<28 - 1

	encodingLatin1 = 0x00
	encodingUTF16  = 0x01

	pictureFrontCover = 0x03
)

// Frame is one ID3v2.3 frame. Payload is never empty.
type Frame struct {
	ID      string
	Payload []byte
}

// Build serializes t into an ID3v2.3 tag. Blank text fields and a missing
// cover produce no frame; when no frame is produced the result is empty.
func Build(t metadata.Track) ([]byte, error) {
	frames, err := Frames(t)
	if err != nil {
		return nil, err
	}

	return Marshal(frames)
}

// Frames returns the frames Build would write for t, in order.
func Frames(t metadata.Track) ([]Frame, error) {
	var frames []Frame

	texts := []struct {
		id    string
		value string
	}{
		{id: "TIT2", value: t.Title},
		{id: "TALB", value: t.Album},
		{id: "TPE1", value: t.Artist},
		{id: "TRCK", value: t.TrackNumber},
	}
	for _, tf := range texts {
		if strings.TrimSpace(tf.value) == "" {
			continue
		}

		payload, err := textPayload(tf.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tf.id, err)
		}
		frames = append(frames, Frame{ID: tf.id, Payload: payload})
	}

	if t.HasCover() {
		payload, err := picturePayload(t.Cover)
		if err != nil {
			return nil, fmt.Errorf("APIC: %w", err)
		}
		frames = append(frames, Frame{ID: "APIC", Payload: payload})
	}

	return frames, nil
}

// Marshal writes the tag header followed by frames. Frames with an empty
// payload are dropped.
func Marshal(frames []Frame) ([]byte, error) {
	size := 0
	for _, f := range frames {
		if len(f.ID) != 4 {
			return nil, fmt.Errorf("%w: id %q", ErrInvalidFrame, f.ID)
		}
		if len(f.Payload) > 0 {
			size += HeaderSize + len(f.Payload)
		}
	}
	if size == 0 {
		return nil, nil
	}
	if size > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTagTooLarge, size)
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+size))
	buf.WriteString("ID3")
	buf.Write([]byte{0x03, 0x00, 0x00})
	buf.Write(Synchsafe(uint32(size)))

	for _, f := range frames {
		if len(f.Payload) == 0 {
			continue
		}
		buf.WriteString(f.ID)
		_ = binary.Write(buf, binary.BigEndian, uint32(len(f.Payload)))
		buf.Write([]byte{0x00, 0x00})
		buf.Write(f.Payload)
	}

	return buf.Bytes(), nil
}

// Synchsafe encodes v as four 7-bit groups, most significant first.
func Synchsafe(v uint32) []byte {
	return []byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}
}

// textPayload is the encoding byte, a little-endian BOM and UTF-16LE text.
func textPayload(s string) ([]byte, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}

	return append([]byte{encodingUTF16}, b...), nil
}

// picturePayload is Latin-1 MIME, NUL, front-cover type, an empty
// description and the image bytes.
func picturePayload(p *metadata.Picture) ([]byte, error) {
	mime := p.MIME
	if strings.TrimSpace(mime) == "" {
		mime = metadata.ImageMIME(p.Data)
	}

	latin1 := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	m, err := latin1.String(mime)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}

	payload := make([]byte, 0, len(m)+4+len(p.Data))
	payload = append(payload, encodingLatin1)
	payload = append(payload, m...)
	payload = append(payload, 0x00, pictureFrontCover, 0x00)
	payload = append(payload, p.Data...)

	return payload, nil
}
