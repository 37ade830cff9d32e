// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled demuxer into a media.Registry.
package formats

import (
	"github.com/ik5/tonemp3/formats/aiff"
	"github.com/ik5/tonemp3/formats/flac"
	"github.com/ik5/tonemp3/formats/mp3"
	"github.com/ik5/tonemp3/formats/vorbis"
	"github.com/ik5/tonemp3/formats/wav"
	"github.com/ik5/tonemp3/media"
)

// oggContainer is the generic Ogg type sniffed when the codec inside is
// not recognised; Vorbis is the only Ogg codec handled.
const oggContainer = "application/ogg"

// Register adds the bundled containers to r.
func Register(r *media.Registry) {
	r.Register(wav.MIMEType, wav.Container{}, wav.Extensions...)
	r.Register(aiff.MIMEType, aiff.Container{}, aiff.Extensions...)
	r.Register(mp3.MIMEType, mp3.Container{}, mp3.Extensions...)
	r.Register(flac.MIMEType, flac.Container{}, flac.Extensions...)
	r.Register(vorbis.MIMEType, vorbis.Container{}, vorbis.Extensions...)
	r.Register(oggContainer, vorbis.Container{})
}

// NewRegistry returns a registry with every bundled container.
func NewRegistry() *media.Registry {
	r := media.NewRegistry()
	Register(r)

	return r
}
