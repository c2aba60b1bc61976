// Package ndjson reads and writes newline-delimited JSON streams of
// uplink envelopes. One line is one envelope; blank and malformed lines
// are skipped with a warning rather than aborting the stream, because a
// single corrupt line in an hours-long capture should not cost the rest.
package ndjson

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lorasense/uplink-decoder/internal/domain"
)

// Reader extracts uplink envelopes from an NDJSON stream. It implements
// pipeline.Extractor and returns io.EOF once the stream is drained.
type Reader struct {
	scanner *bufio.Scanner
	logger  *slog.Logger
	line    int
}

// NewReader wraps r. The scanner buffer is sized for oversized lines so
// a bridge that batches multiple frames into one envelope still parses.
func NewReader(r io.Reader, logger *slog.Logger) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc, logger: logger}
}

// Extract returns the next well-formed uplink on the stream.
func (r *Reader) Extract(ctx context.Context) (domain.Uplink, error) {
	for r.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return domain.Uplink{}, err
		}
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		var up domain.Uplink
		if err := json.Unmarshal([]byte(text), &up); err != nil {
			r.logger.Warn("skipping malformed line",
				"line", r.line,
				"error", err,
			)
			continue
		}
		return up, nil
	}

	if err := r.scanner.Err(); err != nil {
		return domain.Uplink{}, fmt.Errorf("read uplink stream: %w", err)
	}
	return domain.Uplink{}, io.EOF
}
