// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxTrack is the highest track number a player folder can hold.
const MaxTrack = 255

var ErrNoFreeTrack = errors.New("no free track number")

// TrackName returns the file name of track n: 001.mp3 through 255.mp3.
func TrackName(n int) string {
	return fmt.Sprintf("%03d.mp3", n)
}

// NextTrackPath returns the path of the lowest unused track number in dir.
func NextTrackPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	used := make(map[int]bool, len(entries))
	for _, e := range entries {
		if n, ok := trackNumber(e.Name()); ok {
			used[n] = true
		}
	}

	for n := 1; n <= MaxTrack; n++ {
		if !used[n] {
			return filepath.Join(dir, TrackName(n)), nil
		}
	}

	return "", fmt.Errorf("%w: %s holds %d tracks", ErrNoFreeTrack, dir, MaxTrack)
}

// trackNumber parses names like 007.mp3, case-insensitively.
func trackNumber(name string) (int, bool) {
	base, ok := strings.CutSuffix(strings.ToLower(name), ".mp3")
	if !ok || len(base) != 3 {
		return 0, false
	}

	n, err := strconv.Atoi(base)
	if err != nil || n < 1 || n > MaxTrack {
		return 0, false
	}

	return n, true
}
