// SPDX-License-Identifier: EPL-2.0

// Package pump drives a decode loop over a media.Decoder.
//
// The loop alternates between feeding one packet and draining output until
// the decoder answers try-again:
//
//	feeding ──> draining ──> format-pending ──> draining ──> ... ──> ended
//	   ^            │
//	   └────────────┘ try-again
//
// The first format the decoder announces configures the FrameSink. A later
// format with a different sample rate or channel count fails with
// ErrFormatChanged; one that only changes the sample representation is
// accepted. Each Drain waits at most Config.PollTimeout, so a stuck
// decoder surfaces as ErrStalled rather than a hang.
package pump
