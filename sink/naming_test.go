// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNextTrackPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "empty", want: "001.mp3"},
		{name: "next", files: []string{"001.mp3", "002.mp3"}, want: "003.mp3"},
		{name: "gap", files: []string{"001.mp3", "003.mp3"}, want: "002.mp3"},
		{name: "case", files: []string{"001.MP3"}, want: "002.mp3"},
		{name: "ignored", files: []string{"1.mp3", "000.mp3", "256.mp3", "abc.mp3", "001.wav"}, want: "001.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got, err := NextTrackPath(dir)
			if err != nil {
				t.Fatalf("NextTrackPath() error = %v", err)
			}
			if want := filepath.Join(dir, tt.want); got != want {
				t.Errorf("NextTrackPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestNextTrackPath_Full(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for n := 1; n <= MaxTrack; n++ {
		touch(t, dir, TrackName(n))
	}

	if _, err := NextTrackPath(dir); !errors.Is(err, ErrNoFreeTrack) {
		t.Errorf("NextTrackPath() error = %v, want %v", err, ErrNoFreeTrack)
	}
}

func TestNextTrackPath_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := NextTrackPath(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("NextTrackPath() error = %v, want %v", err, ErrUnavailable)
	}
}

func TestTrackName(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]string{1: "001.mp3", 42: "042.mp3", 255: "255.mp3"} {
		if got := TrackName(n); got != want {
			t.Errorf("TrackName(%d) = %q, want %q", n, got, want)
		}
	}
}
