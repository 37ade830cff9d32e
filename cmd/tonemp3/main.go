// SPDX-License-Identifier: EPL-2.0

// Command tonemp3 converts audio files to tagged MP3 files.
//
// Usage:
//
//	tonemp3 [flags] <input>...
//
// Each input becomes the next free numbered track (001.mp3 ... 255.mp3) in
// -dir, or the file named by -o when a single input is given. Defaults come
// from TONEMP3_* environment variables; flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ik5/tonemp3"
	"github.com/ik5/tonemp3/internal/config"
	"github.com/ik5/tonemp3/metadata"
	"github.com/ik5/tonemp3/sink"
)

// options holds the parsed command line.
type options struct {
	Inputs []string

	// Output
	Output string // -o
	Dir    string // -dir

	// Encoder
	Bitrate    int
	Quality    int
	Channels   int
	SampleRate int

	// Metadata
	Title    string
	Artist   string
	Album    string
	Track    string
	NoSource bool // -no-source-tags

	Quiet bool
}

func parseFlags(fs *flag.FlagSet, args []string, cfg config.Config) (options, error) {
	opts := options{}

	fs.StringVar(&opts.Output, "o", "", "output file (single input only)")
	fs.StringVar(&opts.Dir, "dir", cfg.Dir, "folder receiving numbered tracks")
	fs.IntVar(&opts.Bitrate, "bitrate", cfg.Bitrate, "bitrate in kbps (0 = default)")
	fs.IntVar(&opts.Quality, "quality", cfg.Quality, "encoder quality 1-9 (0 = default)")
	fs.IntVar(&opts.Channels, "channels", cfg.Channels, "output channels 1 or 2 (0 = keep up to stereo)")
	fs.IntVar(&opts.SampleRate, "rate", cfg.SampleRate, "output sample rate (0 = nearest to source)")
	fs.StringVar(&opts.Title, "title", "", "title tag")
	fs.StringVar(&opts.Artist, "artist", "", "artist tag")
	fs.StringVar(&opts.Album, "album", "", "album tag")
	fs.StringVar(&opts.Track, "track", "", "track number tag")
	fs.BoolVar(&opts.NoSource, "no-source-tags", false, "do not copy tags from the input")
	fs.BoolVar(&opts.Quiet, "q", false, "do not print progress")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Inputs = fs.Args()
	if len(opts.Inputs) == 0 {
		return opts, errors.New("no input files")
	}
	if opts.Output != "" && len(opts.Inputs) > 1 {
		return opts, errors.New("-o needs exactly one input")
	}

	return opts, nil
}

func (o options) conversion(log *slog.Logger) tonemp3.Options {
	return tonemp3.Options{
		Channels:   o.Channels,
		Bitrate:    o.Bitrate,
		Quality:    o.Quality,
		SampleRate: o.SampleRate,
		Metadata: metadata.Track{
			Title:       o.Title,
			Artist:      o.Artist,
			Album:       o.Album,
			TrackNumber: o.Track,
		},
		SkipMetadata: o.NoSource,
		Logger:       log,
	}
}

// outputPath picks where the next input is written.
func (o options) outputPath() (string, error) {
	if o.Output != "" {
		return o.Output, nil
	}

	return sink.NextTrackPath(o.Dir)
}

func main() {
	cfg := config.Load()
	log := slog.New(cfg.Handler(os.Stderr))

	opts, err := parseFlags(flag.CommandLine, os.Args[1:], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tonemp3: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := 0
	for _, in := range opts.Inputs {
		out, err := run(ctx, in, opts, log)
		if err != nil {
			failed++
			log.Error("conversion failed", "source", in, "output", out, "error", err)

			if errors.Is(err, tonemp3.ErrCancelled) {
				break
			}
			continue
		}

		if !opts.Quiet {
			fmt.Printf("%s -> %s\n", in, out)
		}
	}

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}

// run converts one input and removes the partial output on failure.
func run(ctx context.Context, in string, opts options, log *slog.Logger) (string, error) {
	out, err := opts.outputPath()
	if err != nil {
		return "", err
	}

	co := opts.conversion(log)
	if !opts.Quiet {
		co.OnProgress = func(p float64) {
			fmt.Fprintf(os.Stderr, "\r%s %3d%%", in, int(p*100))
			if p >= 1 {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	err = tonemp3.ConvertFile(ctx, in, out, co)
	if err != nil {
		if rmErr := os.Remove(out); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn("removing partial output", "output", out, "error", rmErr)
		}
	}

	return out, err
}
