// SPDX-License-Identifier: EPL-2.0

// Package tonemp3 converts audio files into tagged MP3 files for small
// embedded players.
//
// A conversion decodes the first audio track of the source, remixes it to
// mono or stereo 16-bit PCM, encodes it as constant bitrate MP3, prefixes
// an ID3v2.3 tag built from the source's tags and syncs the result to
// storage before reporting success.
//
// # Supported Formats
//
// Sources are recognised by content, with the file extension as a fallback:
//   - WAV (8/16/24/32-bit PCM, 32-bit float) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - FLAC via formats/flac
//   - Ogg Vorbis via formats/vorbis
//
// Tags are read from ID3v2, FLAC and Vorbis comments, and WAV INFO lists.
//
// # Quick Start
//
//	err := tonemp3.ConvertFile(ctx, "song.flac", "001.mp3", tonemp3.Options{
//		Channels:   1,
//		OnProgress: func(p float64) { fmt.Printf("\r%3.0f%%", p*100) },
//	})
//
// # Output Layout
//
// The file is the tag (omitted when there is nothing to tag) followed by
// MP3 frames. There is no ID3v1 footer. A source whose sample rate MP3
// cannot carry is resampled to the nearest rate it can.
//
// # Errors
//
// Every failure is a *ConversionError whose Kind tells what went wrong.
// errors.Is works with the Err* sentinels of this package:
//
//	var ce *tonemp3.ConversionError
//	if errors.As(err, &ce) && ce.Kind == tonemp3.KindNoAudioTrack {
//		...
//	}
//
// A failed conversion leaves a partial file behind; removing it is up to
// the caller. Decoders, demuxers and the encoder are always released.
//
// # Pipeline
//
// The stages live in their own packages and can be used on their own:
//   - media: demuxer and decoder contracts, format registry
//   - pump: the decode loop
//   - audio: channel remixing, sample conversion, resampling
//   - mp3enc: streaming MP3 encoder session
//   - id3: tag builder
//   - metadata: tag reader
//   - sink: durable buffered writer
//   - progress: progress reporting
package tonemp3
