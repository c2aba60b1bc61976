// Package decode turns raw sensor payload bytes into named measurement
// records by driving a bitstream reader through a sensor profile's field
// layout. It is the single entry point the rest of the system uses; the
// profile and device layers only select what this package executes.
package decode

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lorasense/uplink-decoder/internal/bitstream"
	"github.com/lorasense/uplink-decoder/internal/domain"
	"github.com/lorasense/uplink-decoder/internal/observability"
	"github.com/lorasense/uplink-decoder/internal/profile"
)

// ErrPayloadTooShort is returned when a strict profile's minimum payload
// length is not met. The caller is expected to reject the whole uplink.
var ErrPayloadTooShort = errors.New("payload too short")

// Resolution reports which profile a decode actually used.
type Resolution struct {
	// Profile is the canonical id of the profile that decoded the payload.
	Profile string
	// Fallback is true when the requested id was unknown and the default
	// profile was substituted.
	Fallback bool
}

// Decoder decodes payloads against a profile registry. All per-decode
// state lives on the stack of a single call, so one Decoder is safe for
// concurrent use across goroutines.
type Decoder struct {
	registry *profile.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Decoder over the given registry.
func New(registry *profile.Registry, logger *slog.Logger, metrics *observability.Metrics) *Decoder {
	return &Decoder{registry: registry, logger: logger, metrics: metrics}
}

// Decode resolves profileID and decodes payload into an ordered record.
// Identical inputs always produce identical records.
func (d *Decoder) Decode(payload []byte, profileID string) (*domain.Record, error) {
	rec, _, err := d.DecodeDetail(payload, profileID)
	return rec, err
}

// DecodeDetail is Decode plus the resolved-profile provenance callers need
// when they forward records downstream.
func (d *Decoder) DecodeDetail(payload []byte, profileID string) (*domain.Record, Resolution, error) {
	prof, matched := d.registry.Resolve(profileID)
	if !matched {
		d.logger.Warn("unknown profile id, using default",
			"requested", profileID,
			"profile", prof.ID,
		)
		d.metrics.ProfileFallbacks.WithLabelValues(profileID).Inc()
	}

	rec, err := d.decodeWith(prof, payload)
	if err != nil {
		return nil, Resolution{}, err
	}
	return rec, Resolution{Profile: prof.ID, Fallback: !matched}, nil
}

// decodeWith runs the field loop for one payload. The reader and record
// are created here and never escape the call except via the returned
// record, which the caller then owns.
func (d *Decoder) decodeWith(prof *profile.Profile, payload []byte) (*domain.Record, error) {
	if prof.Strict && len(payload) < prof.MinBytes() {
		return nil, fmt.Errorf("%w: profile %q needs %d bytes, got %d",
			ErrPayloadTooShort, prof.ID, prof.MinBytes(), len(payload))
	}

	if short := prof.BitLength() - len(payload)*8; short > 0 {
		// Non-strict profiles zero-fill truncated payloads. Logged and
		// counted so an all-zero field can be traced back to a short frame.
		d.logger.Debug("payload shorter than profile, zero-filling",
			"profile", prof.ID,
			"missing_bits", short,
		)
		d.metrics.BitUnderruns.Inc()
	}

	r := bitstream.NewReader(payload)
	rec := domain.NewRecord(len(prof.Fields))
	for _, f := range prof.Fields {
		rec.Set(f.Name, f.Apply(r.Take(f.Bits), rec))
	}
	return rec, nil
}
