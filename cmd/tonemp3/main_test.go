// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/tonemp3"
	"github.com/ik5/tonemp3/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Bitrate: 128, Quality: 4, Dir: "/music"}

	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "environment defaults",
			args: []string{"a.wav"},
			want: options{Inputs: []string{"a.wav"}, Dir: "/music", Bitrate: 128, Quality: 4},
		},
		{
			name: "flags override",
			args: []string{"-quality", "2", "-channels", "1", "-title", "Tone", "-q", "a.wav", "b.flac"},
			want: options{
				Inputs:   []string{"a.wav", "b.flac"},
				Dir:      "/music",
				Bitrate:  128,
				Quality:  2,
				Channels: 1,
				Title:    "Tone",
				Quiet:    true,
			},
		},
		{name: "no inputs", args: []string{"-q"}, wantErr: true},
		{name: "output with many inputs", args: []string{"-o", "x.mp3", "a.wav", "b.wav"}, wantErr: true},
		{name: "unknown flag", args: []string{"-loud", "a.wav"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := flag.NewFlagSet("tonemp3", flag.ContinueOnError)
			fs.SetOutput(io.Discard)

			got, err := parseFlags(fs, tt.args, cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if len(got.Inputs) != len(tt.want.Inputs) {
				t.Fatalf("Inputs = %v, want %v", got.Inputs, tt.want.Inputs)
			}
			for i := range got.Inputs {
				if got.Inputs[i] != tt.want.Inputs[i] {
					t.Errorf("Inputs[%d] = %q, want %q", i, got.Inputs[i], tt.want.Inputs[i])
				}
			}
			if got.Dir != tt.want.Dir || got.Bitrate != tt.want.Bitrate || got.Quality != tt.want.Quality ||
				got.Channels != tt.want.Channels || got.Title != tt.want.Title || got.Quiet != tt.want.Quiet {
				t.Errorf("parseFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRun_RemovesPartialOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(in, []byte("not audio at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	opts := options{Inputs: []string{in}, Dir: dir, Quiet: true}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	out, err := run(context.Background(), in, opts, log)
	if !errors.Is(err, tonemp3.ErrSourceUnavailable) {
		t.Fatalf("run() error = %v, want %v", err, tonemp3.ErrSourceUnavailable)
	}
	if filepath.Base(out) != "001.mp3" {
		t.Errorf("output = %s, want 001.mp3", out)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial output still present: %v", err)
	}
}

func TestOptions_Conversion(t *testing.T) {
	t.Parallel()

	o := options{Channels: 1, Bitrate: 128, Title: "Tone", Track: "3", NoSource: true}
	co := o.conversion(slog.Default())

	if co.Channels != 1 || co.Bitrate != 128 || !co.SkipMetadata {
		t.Errorf("conversion() = %+v", co)
	}
	if co.Metadata.Title != "Tone" || co.Metadata.TrackNumber != "3" {
		t.Errorf("Metadata = %+v", co.Metadata)
	}
	if err := co.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
