// SPDX-License-Identifier: EPL-2.0

// Package vorbis demuxes and decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Packets carry interleaved float32 samples. The stream length, and so the
// track duration, comes from the last Ogg page granule position.
//
// # Usage
//
//	d, err := vorbis.Container{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer d.Close()
//
//	track, _ := media.Probe(d)
//	p, err := d.ReadPacket()
//
// Comments, including METADATA_BLOCK_PICTURE cover art, are read by the
// metadata package.
package vorbis
