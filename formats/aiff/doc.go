// SPDX-License-Identifier: EPL-2.0

// Package aiff demuxes Audio Interchange File Format files.
//
// Parsing is delegated to github.com/go-audio/aiff; this package turns its
// integer sample buffers into 16-bit little-endian PCM packets.
//
// # Supported Formats
//
//   - Uncompressed AIFF, 8, 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// AIFF-C compressed variants are rejected by the underlying decoder.
//
// # Usage
//
//	d, err := aiff.Container{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer d.Close()
//
//	track, err := media.Probe(d)
//	for {
//	    p, err := d.ReadPacket()
//	    if err == io.EOF {
//	        break
//	    }
//	    // p.Data holds up to PacketFrames frames
//	}
//
// Samples deeper than 16 bits keep their most significant bits; 8-bit
// samples are widened.
package aiff
