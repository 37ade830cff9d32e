// SPDX-License-Identifier: EPL-2.0

// Package flac demuxes native FLAC streams with github.com/mewkiz/flac.
//
// Every FLAC frame becomes one packet of interleaved 16-bit PCM; deeper
// samples keep their most significant bits. The duration comes from the
// StreamInfo sample count when the encoder recorded it.
//
//	d, err := flac.Container{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer d.Close()
//
//	track, _ := media.Probe(d)
//	p, err := d.ReadPacket()
package flac
