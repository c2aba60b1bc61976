package ndjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/lorasense/uplink-decoder/internal/domain"
)

// Writer appends decoded envelopes to an NDJSON stream, one object per
// line. It implements pipeline.Loader and is safe for concurrent use.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Load marshals out and writes it followed by a newline.
func (w *Writer) Load(_ context.Context, out domain.DecodedUplink) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal decoded uplink: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write decoded uplink: %w", err)
	}
	return nil
}
