// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac/meta"
)

func readVorbis(rs io.ReadSeeker) (Track, error) {
	r, err := oggvorbis.NewReader(rs)
	if err != nil {
		return Track{}, fmt.Errorf("vorbis: %w", err)
	}

	comments := r.CommentHeader().Comments
	tags := make([][2]string, 0, len(comments))
	for _, c := range comments {
		k, v, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		tags = append(tags, [2]string{k, v})
	}

	return fromComments(tags), nil
}

// decodeBlockPicture decodes a METADATA_BLOCK_PICTURE comment: a base64
// FLAC picture block body without its block header.
func decodeBlockPicture(s string) (*meta.Picture, error) {
	body, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPicture, err)
	}
	if len(body) >= 1<<24 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPicture, len(body))
	}

	n := len(body)
	block := make([]byte, 0, 4+n)
	block = append(block, 0x80|byte(meta.TypePicture), byte(n>>16), byte(n>>8), byte(n))
	block = append(block, body...)

	b, err := meta.Parse(bytes.NewReader(block))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPicture, err)
	}

	pic, ok := b.Body.(*meta.Picture)
	if !ok {
		return nil, ErrInvalidPicture
	}

	return pic, nil
}
