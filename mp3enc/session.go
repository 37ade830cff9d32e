// SPDX-License-Identifier: EPL-2.0

package mp3enc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/utils"
)

// Session owns one encoder for one conversion: Configure once, Encode any
// number of frames, Finish once, Close.
type Session struct {
	newEngine EngineFactory

	params     Params
	configured bool
	engine     Engine
	block      int // interleaved samples per engine block

	pending  []int16
	scratch  []int16
	out      bytes.Buffer
	finished bool
	closed   bool
}

// NewSession returns an unconfigured session. A nil factory selects
// NewShineEngine.
func NewSession(f EngineFactory) *Session {
	if f == nil {
		f = NewShineEngine
	}

	return &Session{newEngine: f}
}

// Configure opens the engine. Repeating it with identical params is a
// no-op; different params fail with ErrReconfigurationConflict.
func (s *Session) Configure(p Params) error {
	if s.closed || s.finished {
		return ErrSessionClosed
	}
	if s.configured {
		if p == s.params {
			return nil
		}
		return fmt.Errorf("%w: have %s, got %s", ErrReconfigurationConflict, s.params, p)
	}

	if err := p.Validate(); err != nil {
		return err
	}

	engine, err := s.newEngine(p)
	if err != nil {
		return encoderError(err)
	}

	s.params = p
	s.engine = engine
	s.block = engine.FrameSize() * p.Channels
	s.configured = true

	return nil
}

func (s *Session) Configured() bool { return s.configured }

// Params returns the configured parameters.
func (s *Session) Params() Params { return s.params }

// Encode buffers fr and compresses every whole block available. The
// returned bytes may be empty and are only valid until the next call.
// Encoding after Finish is a programming error and panics.
func (s *Session) Encode(fr audio.Frame) ([]byte, error) {
	if s.finished {
		panic("mp3enc: Encode called after Finish")
	}
	if s.closed {
		return nil, ErrSessionClosed
	}
	if !s.configured {
		return nil, ErrNotConfigured
	}
	if err := fr.Check(); err != nil {
		return nil, err
	}
	if fr.Format.SampleRate != s.params.SampleRate || fr.Format.Channels != s.params.Channels {
		return nil, fmt.Errorf("%w: frame %s does not match %s", ErrReconfigurationConflict, fr.Format, s.params)
	}

	switch fr.Format.Representation {
	case audio.Int16:
		s.pending = append(s.pending, fr.Int16...)
	case audio.Float32:
		s.scratch = utils.Float32sToInt16s(s.scratch[:0], fr.Float32)
		s.pending = append(s.pending, s.scratch...)
	}

	s.out.Reset()

	whole := len(s.pending) / s.block * s.block
	if whole == 0 {
		return nil, nil
	}

	if err := s.engine.Encode(&s.out, s.pending[:whole]); err != nil {
		return nil, encoderError(err)
	}

	n := copy(s.pending, s.pending[whole:])
	s.pending = s.pending[:n]

	return s.out.Bytes(), nil
}

// Finish pads the pending samples to a whole block with silence, encodes
// them and appends the engine's trailing bytes. It may be called once.
func (s *Session) Finish() ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if !s.configured {
		return nil, ErrNotConfigured
	}
	if s.finished {
		return nil, fmt.Errorf("%w: already finished", ErrSessionClosed)
	}
	s.finished = true

	s.out.Reset()

	if len(s.pending) > 0 {
		for len(s.pending)%s.block != 0 {
			s.pending = append(s.pending, 0)
		}
		if err := s.engine.Encode(&s.out, s.pending); err != nil {
			return nil, encoderError(err)
		}
		s.pending = s.pending[:0]
	}

	if err := s.engine.Flush(&s.out); err != nil {
		return nil, encoderError(err)
	}

	return s.out.Bytes(), nil
}

// Close releases the engine. It is safe to call more than once and on a
// session that never finished.
func (s *Session) Close() error {
	s.closed = true
	s.engine = nil
	s.pending = nil
	s.scratch = nil

	return nil
}

func encoderError(err error) error {
	if errors.Is(err, ErrEncoderFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEncoderFailure, err)
}
