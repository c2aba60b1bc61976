// Package pipeline orchestrates the extract-transform-load loop that
// turns a stream of uplink envelopes into decoded measurement records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lorasense/uplink-decoder/internal/domain"
	"github.com/lorasense/uplink-decoder/internal/observability"
)

// Extractor reads the next raw uplink from the source, returning io.EOF
// once the source is drained.
type Extractor interface {
	Extract(ctx context.Context) (domain.Uplink, error)
}

// Transformer converts a raw uplink into a decoded envelope.
type Transformer interface {
	Transform(ctx context.Context, up domain.Uplink) (domain.DecodedUplink, error)
}

// Loader writes a decoded envelope to the destination.
type Loader interface {
	Load(ctx context.Context, out domain.DecodedUplink) error
}

// Pipeline drives uplinks from an Extractor through a Transformer into a
// Loader one at a time, in source order.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes the loop until the source drains or the context is
// cancelled. Uplinks that fail to decode are logged, counted, and
// skipped; source and sink errors stop the run, since a broken stream or
// full disk will not improve on retry.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	var consumed, produced, skipped int
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err(), "produced", produced)
			return nil
		default:
		}

		up, err := p.extractor.Extract(ctx)
		if errors.Is(err, io.EOF) {
			p.logger.Info("source drained",
				"consumed", consumed, "produced", produced, "skipped", skipped)
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("extract uplink: %w", err)
		}

		consumed++
		p.metrics.UplinksConsumed.Inc()

		start := time.Now()
		out, err := p.transformer.Transform(ctx, up)
		if err != nil {
			p.logger.Warn("decode failed, skipping uplink",
				"error", err,
				"dev_eui", up.EUI(),
			)
			p.metrics.DecodeErrors.Inc()
			skipped++
			continue
		}
		p.metrics.DecodeDuration.Observe(time.Since(start).Seconds())

		if err := p.loader.Load(ctx, out); err != nil {
			return fmt.Errorf("load record: %w", err)
		}
		produced++
		p.metrics.RecordsProduced.Inc()
	}
}
