// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func int16Frame(rate, channels int, samples ...int16) Frame {
	return Frame{
		Format: Format{SampleRate: rate, Channels: channels, Representation: Int16},
		Int16:  samples,
	}
}

func floatFrame(rate, channels int, samples ...float32) Frame {
	return Frame{
		Format:  Format{SampleRate: rate, Channels: channels, Representation: Float32},
		Float32: samples,
	}
}

func TestCondition_DownmixIsExactMean(t *testing.T) {
	t.Parallel()

	out, err := Condition(int16Frame(44100, 2, 1000, -1000), 1, nil, Int16)
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}

	if !slices.Equal(out.Int16, []int16{0}) {
		t.Errorf("Condition() = %v, want [0] (mean, not first channel)", out.Int16)
	}
	if out.Format.Channels != 1 {
		t.Errorf("Channels = %d, want 1", out.Format.Channels)
	}
}

func TestCondition_Int16Downmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		in       []int16
		want     []int16
	}{
		{name: "stereo", channels: 2, in: []int16{100, 300, -5, -6}, want: []int16{200, -6}},
		{name: "stereo rounds half away from zero", channels: 2, in: []int16{1, 2, -1, -2}, want: []int16{2, -2}},
		{name: "stereo extremes", channels: 2, in: []int16{32767, 32767, -32768, -32768}, want: []int16{32767, -32768}},
		{name: "three channels", channels: 3, in: []int16{3, 3, 4}, want: []int16{3}},
		{name: "six channels", channels: 6, in: []int16{6, 6, 6, 6, 6, 6}, want: []int16{6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Condition(int16Frame(8000, tt.channels, tt.in...), 1, nil, Int16)
			if err != nil {
				t.Fatalf("Condition() error = %v", err)
			}
			if !slices.Equal(out.Int16, tt.want) {
				t.Errorf("Condition() = %v, want %v", out.Int16, tt.want)
			}
		})
	}
}

func TestCondition_FloatDownmix(t *testing.T) {
	t.Parallel()

	out, err := Condition(floatFrame(8000, 2, 0.4, 0.6, -1, 1), 1, nil, Float32)
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}

	want := []float32{0.5, 0}
	for i := range want {
		if math.Abs(float64(out.Float32[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, out.Float32[i], want[i])
		}
	}
}

func TestCondition_FloatClampToInt16(t *testing.T) {
	t.Parallel()

	out, err := Condition(floatFrame(8000, 1, 1.5, -1.5, 0.5), 1, nil, Int16)
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}

	want := []int16{32767, -32767, 16384}
	if !slices.Equal(out.Int16, want) {
		t.Errorf("Condition() = %v, want %v", out.Int16, want)
	}
	if out.Format.Representation != Int16 {
		t.Errorf("Representation = %s, want int16", out.Format.Representation)
	}
}

func TestCondition_IdentityPassThrough(t *testing.T) {
	t.Parallel()

	in := int16Frame(8000, 2, 1, 2, 3, 4)
	out, err := Condition(in, 2, ChannelMap{1, 0}, Int16)
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}

	if !slices.Equal(out.Int16, in.Int16) {
		t.Errorf("Condition() = %v, want %v", out.Int16, in.Int16)
	}

	out.Int16[0] = 99
	if in.Int16[0] != 1 {
		t.Error("Condition() output aliases the input buffer")
	}
}

func TestCondition_ChannelSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		inCh  int
		outCh int
		m     ChannelMap
		in    []int16
		want  []int16
	}{
		{name: "mono to stereo duplicates", inCh: 1, outCh: 2, in: []int16{7, 8}, want: []int16{7, 7, 8, 8}},
		{name: "5.1 to stereo takes front pair", inCh: 6, outCh: 2, in: []int16{1, 2, 3, 4, 5, 6}, want: []int16{1, 2}},
		{name: "explicit map", inCh: 3, outCh: 2, m: ChannelMap{2, 0}, in: []int16{1, 2, 3}, want: []int16{3, 1}},
		{name: "too large index clamps", inCh: 3, outCh: 2, m: ChannelMap{0, 9}, in: []int16{1, 2, 3}, want: []int16{1, 3}},
		{name: "longer map is fine", inCh: 4, outCh: 2, m: ChannelMap{0, 1, 2, 3}, in: []int16{1, 2, 3, 4}, want: []int16{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Condition(int16Frame(8000, tt.inCh, tt.in...), tt.outCh, tt.m, Int16)
			if err != nil {
				t.Fatalf("Condition() error = %v", err)
			}
			if !slices.Equal(out.Int16, tt.want) {
				t.Errorf("Condition() = %v, want %v", out.Int16, tt.want)
			}
			if len(out.Int16) != out.Frames()*tt.outCh {
				t.Errorf("output length %d not frames*channels", len(out.Int16))
			}
		})
	}
}

func TestCondition_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       Frame
		channels int
		m        ChannelMap
		target   Representation
		wantErr  error
	}{
		{name: "short map", in: int16Frame(8000, 3, 1, 2, 3), channels: 2, m: ChannelMap{0}, target: Int16, wantErr: ErrInvalidChannelMap},
		{name: "negative index", in: int16Frame(8000, 3, 1, 2, 3), channels: 2, m: ChannelMap{0, -1}, target: Int16, wantErr: ErrInvalidChannelMap},
		{name: "zero channels", in: int16Frame(8000, 1, 1), channels: 0, target: Int16, wantErr: ErrInvalidChannels},
		{name: "partial frame", in: int16Frame(8000, 2, 1, 2, 3), channels: 1, target: Int16, wantErr: ErrPartialFrame},
		{name: "unknown input encoding", in: Frame{Format: Format{SampleRate: 8000, Channels: 1}}, channels: 1, target: Int16, wantErr: ErrUnsupportedEncoding},
		{name: "unknown target", in: int16Frame(8000, 1, 1), channels: 1, target: Representation(7), wantErr: ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Condition(tt.in, tt.channels, tt.m, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Condition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCondition_KeepsRepresentationWhenUnset(t *testing.T) {
	t.Parallel()

	out, err := Condition(floatFrame(8000, 2, 0.25, 0.75), 1, nil, RepresentationUnknown)
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}
	if out.Format.Representation != Float32 || out.Float32[0] != 0.5 {
		t.Errorf("Condition() = %+v", out)
	}
}

func TestNewConditioner(t *testing.T) {
	t.Parallel()

	if _, err := NewConditioner(0, nil, Int16); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("NewConditioner(0) error = %v", err)
	}
	if _, err := NewConditioner(2, ChannelMap{0}, Int16); !errors.Is(err, ErrInvalidChannelMap) {
		t.Errorf("NewConditioner(short map) error = %v", err)
	}
	if _, err := NewConditioner(1, nil, RepresentationUnknown); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("NewConditioner(unknown) error = %v", err)
	}

	c, err := NewConditioner(1, nil, Int16)
	if err != nil {
		t.Fatalf("NewConditioner() error = %v", err)
	}

	in := Format{SampleRate: 22050, Channels: 2, Representation: Float32}
	if got := c.Output(in); got != (Format{SampleRate: 22050, Channels: 1, Representation: Int16}) {
		t.Errorf("Output() = %v", got)
	}

	out, err := c.Condition(floatFrame(22050, 2, 1, 1))
	if err != nil {
		t.Fatalf("Condition() error = %v", err)
	}
	if !slices.Equal(out.Int16, []int16{32767}) {
		t.Errorf("Condition() = %v", out.Int16)
	}
}

func TestDefaultChannelMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, out int
		want    ChannelMap
	}{
		{in: 2, out: 1, want: ChannelMap{0}},
		{in: 1, out: 2, want: ChannelMap{0, 0}},
		{in: 2, out: 2, want: ChannelMap{0, 1}},
		{in: 6, out: 2, want: ChannelMap{0, 1}},
	}

	for _, tt := range tests {
		if got := DefaultChannelMap(tt.in, tt.out); !slices.Equal(got, tt.want) {
			t.Errorf("DefaultChannelMap(%d, %d) = %v, want %v", tt.in, tt.out, got, tt.want)
		}
	}
}

func BenchmarkCondition_StereoToMono(b *testing.B) {
	in := int16Frame(44100, 2, make([]int16, 8192)...)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if _, err := Condition(in, 1, nil, Int16); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCondition_FloatStereoToInt16(b *testing.B) {
	in := floatFrame(44100, 2, make([]float32, 8192)...)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if _, err := Condition(in, 2, nil, Int16); err != nil {
			b.Fatal(err)
		}
	}
}
