// SPDX-License-Identifier: EPL-2.0

package tonemp3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/tonemp3/id3"
	"github.com/ik5/tonemp3/media"
	"github.com/ik5/tonemp3/metadata"
	"github.com/ik5/tonemp3/progress"
	"github.com/ik5/tonemp3/pump"
	"github.com/ik5/tonemp3/sink"
)

// Convert transcodes src into an ID3v2.3-tagged MP3 written to dst.
//
// The tag (if any) precedes the first MP3 frame; there is no trailing tag.
// dst is closed before Convert returns. On success every byte was flushed
// and synced first; on failure dst holds a partial file that the caller
// should remove. Any error is a *ConversionError.
func Convert(ctx context.Context, src Source, dst sink.Target, opts Options) error {
	if err := opts.Validate(); err != nil {
		return wrap(errors.Join(err, dst.Close()))
	}
	opts = opts.withDefaults()
	log := opts.Logger.With("source", displayName(src))
	started := time.Now()

	var report progress.Reporter
	if opts.OnProgress != nil {
		report = progress.Func(opts.OnProgress)
		if opts.AsyncProgress {
			async := progress.NewAsync(report)
			defer async.Close()
			report = async
		}
	}
	tracker := progress.NewTracker(report)

	var (
		res     result
		written int64
	)
	err := sink.WriteAllThenSync(dst, func(w *sink.Writer) error {
		var err error
		res, err = transcode(ctx, src, w, opts, tracker, log)
		written = w.Written()
		return err
	})
	if err != nil {
		return wrap(err)
	}

	tracker.Finish()

	log.Info("converted",
		"bytes", written,
		"tag_bytes", res.tagBytes,
		"frames", res.stats.Frames,
		"elapsed", time.Since(started),
	)

	return nil
}

type result struct {
	tagBytes int
	stats    pump.Stats
}

// transcode writes the tag and the MP3 stream of src to w. It releases
// everything it opened before returning.
func transcode(ctx context.Context, src Source, w io.Writer, opts Options, tracker *progress.Tracker, log *slog.Logger) (result, error) {
	var res result

	in, err := open(ctx, src, opts, log)
	defer in.close(log)
	if err != nil {
		return res, err
	}

	log.Info("converting",
		"mime", in.track.MIME,
		"sample_rate", in.track.Format.SampleRate,
		"channels", in.track.Format.Channels,
		"duration", in.track.Duration,
	)

	tag, err := id3.Build(in.tags.Overlay(opts.Metadata))
	if err != nil {
		return res, err
	}
	if _, err := w.Write(tag); err != nil {
		return res, err
	}
	res.tagBytes = len(tag)

	enc := newEncodeSink(opts, w, log)
	defer enc.Close()

	tracker.Start(in.track.Duration)

	res.stats, err = pump.Run(ctx, in.demux, in.decoder, enc, pump.Config{
		PollTimeout: opts.PollTimeout,
		Tracker:     tracker,
		Logger:      log,
	})
	if err != nil {
		return res, err
	}

	return res, enc.Finish()
}

// ConvertFile converts the file at in into a new file at out. A partial
// out is left behind on failure.
func ConvertFile(ctx context.Context, in, out string, opts Options) error {
	dst, err := sink.Create(out)
	if err != nil {
		return wrap(err)
	}

	return Convert(ctx, FileSource(in), dst, opts)
}

// input holds everything opened for reading one source.
type input struct {
	reader  io.Closer
	demux   media.Demuxer
	track   media.TrackInfo
	decoder media.Decoder
	tags    metadata.Track
}

// open reads tags and probes the audio track concurrently.
func open(ctx context.Context, src Source, opts Options, log *slog.Logger) (*input, error) {
	in := &input{}

	g, gctx := errgroup.WithContext(ctx)

	if !opts.SkipMetadata {
		g.Go(func() error {
			in.tags = readTags(src, log)
			return nil
		})
	}

	g.Go(func() error {
		rs, err := src.Open()
		if err != nil {
			return err
		}
		in.reader = rs

		if in.demux, err = opts.Registry.Open(rs, src.Name()); err != nil {
			return err
		}
		if in.track, err = media.Probe(in.demux); err != nil {
			return err
		}
		if in.decoder, err = opts.NewDecoder(in.track); err != nil {
			return fmt.Errorf("%w: decoder for %s: %w", media.ErrSourceUnavailable, in.track, err)
		}

		log.Debug("probed", "track", in.track.Index, "mime", in.track.MIME, "bit_depth", in.track.BitDepth)

		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return in, err
	}

	return in, ctx.Err()
}

// close releases the decoder, the demuxer and the reader, in that order.
func (in *input) close(log *slog.Logger) {
	var errs []error
	if in.decoder != nil {
		errs = append(errs, in.decoder.Close())
	}
	if in.demux != nil {
		errs = append(errs, in.demux.Close())
	}
	if in.reader != nil {
		errs = append(errs, in.reader.Close())
	}

	if err := errors.Join(errs...); err != nil {
		log.Debug("release input", "error", err)
	}
}

// readTags never fails the conversion: a source without readable tags
// converts untagged.
func readTags(src Source, log *slog.Logger) metadata.Track {
	rs, err := src.Open()
	if err != nil {
		log.Warn("read metadata", "error", err)
		return metadata.Track{}
	}
	defer rs.Close()

	t, err := metadata.Extract(rs)
	if err != nil {
		log.Warn("read metadata", "error", err)
		return metadata.Track{}
	}

	return t
}
