// SPDX-License-Identifier: EPL-2.0

// Package mp3enc adapts a block-oriented MP3 encoder to a streaming session.
//
// A Session is opened against one set of Params and accepts conditioned PCM
// frames of any length, handing the engine whole layer III blocks (1152
// samples per channel at 32 kHz and above, 576 below). Finish pads the tail
// with silence and must be called exactly once.
//
// The default engine is shine, which encodes at 128 kbps and one of
// ShineSampleRates; mono sessions produce single-channel streams.
//
//	s := mp3enc.NewSession(nil)
//	defer s.Close()
//
//	if err := s.Configure(mp3enc.ParamsFor(format, 0, 0)); err != nil {
//		return err
//	}
//	for _, fr := range frames {
//		b, err := s.Encode(fr)
//		...
//	}
//	tail, err := s.Finish()
package mp3enc
