// SPDX-License-Identifier: EPL-2.0

// Package wav demuxes RIFF/WAVE files.
//
// Reading is built on github.com/go-audio/wav, which parses the RIFF
// chunks and locates the data chunk. Packets are cut from that chunk only,
// so LIST or other chunks after the audio are never mistaken for samples.
//
// # Supported Formats
//
//   - Integer PCM, 8 (unsigned), 16, 24 and 32 bits, delivered as 16-bit
//   - IEEE float, 32 bits, delivered as float32
//   - WAVE_FORMAT_EXTENSIBLE carrying integer PCM
//   - Any channel count and sample rate
//
// # Demuxing
//
//	d, err := wav.Container{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer d.Close()
//
//	track, err := media.Probe(d)
//	p, err := d.ReadPacket() // io.EOF at the end of the data chunk
//
// Each packet holds up to PacketFrames interleaved frames of
// little-endian PCM, stamped with the time of its first frame.
//
// # Errors
//
//   - ErrNotWavFile: the input is not RIFF/WAVE
//   - ErrUnsupportedWavFormat: a format tag other than PCM or float
//   - ErrUnsupportedBitDepth: a sample size the demuxer cannot convert
//   - ErrUnsupportedWavLayout: no data chunk, or a nonsensical fmt chunk
package wav
