// SPDX-License-Identifier: EPL-2.0

// Package mp3 demuxes and decodes MPEG-1/2 Layer III files with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields 16-bit little-endian stereo, even for mono
// sources, so the track reports two channels. The duration is known when
// the source is seekable, which Container.Open always requires.
//
// # Usage
//
//	d, err := mp3.Container{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer d.Close()
//
//	track, _ := media.Probe(d)
//	p, err := d.ReadPacket()
//
// ID3 tags are skipped by the decoder; read them with the metadata package.
package mp3
