// SPDX-License-Identifier: EPL-2.0

// Package metadata reads descriptive tags (title, artist, album, track
// number and cover art) from audio sources, independently of decoding.
//
// Supported carriers: ID3v2 in MP3, Vorbis comments and PICTURE blocks in
// FLAC, Vorbis comments (including METADATA_BLOCK_PICTURE) in Ogg, and the
// RIFF INFO list in WAV. AIFF sources yield an empty Track.
package metadata
