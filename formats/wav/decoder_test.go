// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	"github.com/ik5/tonemp3/audio"
	"github.com/ik5/tonemp3/internal/audiotest"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/utils"
)

func wav16(t testing.TB, rate, channels int, samples []int16) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := audiotest.WriteWAV16(buf, rate, channels, samples); err != nil {
		t.Fatalf("audiotest.WriteWAV16() error = %v", err)
	}

	return buf.Bytes()
}

func ramp(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i%2000 - 1000)
	}

	return out
}

func openSelected(t *testing.T, data []byte) (media.Demuxer, media.TrackInfo) {
	t.Helper()

	d, err := Container{}.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	info, err := media.Probe(d)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	return d, info
}

func readAll(t *testing.T, d media.Demuxer) []media.Packet {
	t.Helper()

	var out []media.Packet
	for {
		p, err := d.ReadPacket()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		out = append(out, p)
	}
}

func TestContainer_MonoTrackInfo(t *testing.T) {
	t.Parallel()

	_, info := openSelected(t, wav16(t, 8000, 1, ramp(16000)))

	want := audio.Format{SampleRate: 8000, Channels: 1, Representation: audio.Int16}
	if info.Format != want {
		t.Errorf("Format = %v, want %v", info.Format, want)
	}
	if info.MIME != MIMEType {
		t.Errorf("MIME = %q, want %q", info.MIME, MIMEType)
	}
	if info.BitDepth != 16 {
		t.Errorf("BitDepth = %d, want 16", info.BitDepth)
	}
	if info.Duration != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", info.Duration)
	}
}

func TestContainer_ReadPacketNeedsSelection(t *testing.T) {
	t.Parallel()

	d, err := Container{}.Open(bytes.NewReader(wav16(t, 8000, 1, ramp(10))))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := d.ReadPacket(); !errors.Is(err, media.ErrNoTrackSelected) {
		t.Errorf("ReadPacket() error = %v, want ErrNoTrackSelected", err)
	}
	if err := d.SelectTrack(1); !errors.Is(err, media.ErrTrackOutOfRange) {
		t.Errorf("SelectTrack(1) error = %v, want ErrTrackOutOfRange", err)
	}
}

func TestContainer_StereoPackets(t *testing.T) {
	t.Parallel()

	const frames = 10000
	samples := ramp(frames * 2)
	d, _ := openSelected(t, wav16(t, 44100, 2, samples))

	packets := readAll(t, d)
	if len(packets) != 3 {
		t.Fatalf("packets = %d, want 3", len(packets))
	}

	var got []int16
	var framesSeen int64
	for i, p := range packets {
		if want := media.FramesToDuration(framesSeen, 44100); p.Timestamp != want {
			t.Errorf("packet %d timestamp = %v, want %v", i, p.Timestamp, want)
		}
		pcm := utils.DecodeInt16LE(nil, p.Data)
		framesSeen += int64(len(pcm) / 2)
		got = append(got, pcm...)
	}

	if !slices.Equal(got, samples) {
		t.Error("decoded samples differ from input")
	}
	if framesSeen != frames {
		t.Errorf("frames = %d, want %d", framesSeen, frames)
	}
}

func TestContainer_TrailingInfoIsNotAudio(t *testing.T) {
	t.Parallel()

	samples := ramp(301)
	buf := new(bytes.Buffer)
	if err := audiotest.WriteWAV16Info(buf, 8000, 1, samples, audiotest.WAVInfo{Title: "Tone", Artist: "Gen"}); err != nil {
		t.Fatalf("audiotest.WriteWAV16Info() error = %v", err)
	}

	d, _ := openSelected(t, buf.Bytes())

	var got []int16
	for _, p := range readAll(t, d) {
		got = append(got, utils.DecodeInt16LE(nil, p.Data)...)
	}

	if !slices.Equal(got, samples) {
		t.Errorf("got %d samples, want %d", len(got), len(samples))
	}
}

func TestContainer_Float32(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25}
	buf := new(bytes.Buffer)
	if err := audiotest.WriteWAVFloat32(buf, 48000, 2, samples); err != nil {
		t.Fatalf("audiotest.WriteWAVFloat32() error = %v", err)
	}

	d, info := openSelected(t, buf.Bytes())
	if info.Format.Representation != audio.Float32 {
		t.Fatalf("Representation = %s, want float32", info.Format.Representation)
	}

	packets := readAll(t, d)
	if len(packets) != 1 {
		t.Fatalf("packets = %d, want 1", len(packets))
	}

	if got := utils.DecodeFloat32LE(nil, packets[0].Data); !slices.Equal(got, samples) {
		t.Errorf("samples = %v, want %v", got, samples)
	}
}

func TestContainer_24Bit(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := audiotest.WriteWAV24(buf, 96000, 1, []int32{0x7FFFFF, -0x800000, 0x100, -0x100}); err != nil {
		t.Fatalf("audiotest.WriteWAV24() error = %v", err)
	}

	d, info := openSelected(t, buf.Bytes())
	if info.BitDepth != 24 || info.Format.Representation != audio.Int16 {
		t.Fatalf("info = %+v", info)
	}

	packets := readAll(t, d)
	want := []int16{32767, -32768, 1, -1}
	if got := utils.DecodeInt16LE(nil, packets[0].Data); !slices.Equal(got, want) {
		t.Errorf("samples = %v, want %v", got, want)
	}
}

func TestContainer_Errors(t *testing.T) {
	t.Parallel()

	patch := func(offset int, v uint16) []byte {
		data := wav16(t, 8000, 1, ramp(100))
		binary.LittleEndian.PutUint16(data[offset:], v)
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "not RIFF", data: []byte("NOT A WAV FILE DATA AT ALL, JUST TEXT"), wantErr: ErrNotWavFile},
		{name: "ADPCM", data: patch(20, 2), wantErr: ErrUnsupportedWavFormat},
		{name: "12 bit", data: patch(34, 12), wantErr: ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Container{}.Open(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestContainer_ReadAfterClose(t *testing.T) {
	t.Parallel()

	d, _ := openSelected(t, wav16(t, 8000, 1, ramp(100)))
	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := d.ReadPacket(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadPacket() after Close error = %v, want io.EOF", err)
	}
}

func BenchmarkContainer_ReadPacket(b *testing.B) {
	data := wav16(b, 44100, 2, ramp(44100*2))

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		d, err := Container{}.Open(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		_ = d.SelectTrack(0)
		for {
			if _, err := d.ReadPacket(); err != nil {
				break
			}
		}
	}
}
