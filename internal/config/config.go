// SPDX-License-Identifier: EPL-2.0

// Package config loads the command-line tool's defaults from TONEMP3_*
// environment variables.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the tool's runtime configuration.
type Config struct {
	// Encoder
	Bitrate    int // kbps, 0 selects the encoder default
	Quality    int // 1 (best) to 9, 0 selects the encoder default
	Channels   int // 1 or 2, 0 keeps the source up to stereo
	SampleRate int // 0 fits the source rate

	// Output
	Dir string // folder for numbered tracks

	// Logging
	LogLevel  slog.Level
	LogFormat string // text or json
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Bitrate:    envInt("TONEMP3_BITRATE", 0),
		Quality:    envInt("TONEMP3_QUALITY", 0),
		Channels:   envInt("TONEMP3_CHANNELS", 0),
		SampleRate: envInt("TONEMP3_SAMPLE_RATE", 0),

		Dir: envStr("TONEMP3_DIR", "."),

		LogLevel:  envLevel("TONEMP3_LOG_LEVEL", slog.LevelInfo),
		LogFormat: strings.ToLower(envStr("TONEMP3_LOG_FORMAT", "text")),
	}
}

// Handler returns the slog handler c asks for, writing to w.
func (c Config) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envLevel accepts slog level names (debug, info, warn, error) with an
// optional offset such as "debug-2".
func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
