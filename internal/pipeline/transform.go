package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorasense/uplink-decoder/internal/decode"
	"github.com/lorasense/uplink-decoder/internal/devices"
	"github.com/lorasense/uplink-decoder/internal/domain"
)

// UplinkTransformer resolves each uplink's device to its configured
// decoder profile and decodes the payload.
type UplinkTransformer struct {
	devices *devices.Registry
	decoder *decode.Decoder
	logger  *slog.Logger
}

// NewTransformer creates an UplinkTransformer.
func NewTransformer(reg *devices.Registry, dec *decode.Decoder, logger *slog.Logger) *UplinkTransformer {
	return &UplinkTransformer{devices: reg, decoder: dec, logger: logger}
}

// Transform decodes one uplink envelope into a decoded envelope.
func (t *UplinkTransformer) Transform(_ context.Context, up domain.Uplink) (domain.DecodedUplink, error) {
	payload, err := up.Payload()
	if err != nil {
		return domain.DecodedUplink{}, err
	}

	eui := up.EUI()
	profileID, known := t.devices.ProfileFor(eui)
	if !known {
		t.logger.Debug("unprovisioned device, using default profile",
			"dev_eui", eui,
			"profile", profileID,
		)
	}

	rec, res, err := t.decoder.DecodeDetail(payload, profileID)
	if err != nil {
		return domain.DecodedUplink{}, fmt.Errorf("decode payload from %s: %w", eui, err)
	}

	return domain.DecodedUplink{
		DevEUI:          eui,
		Profile:         res.Profile,
		ProfileFallback: res.Fallback,
		Values:          rec,
		ReceivedAt:      up.ReceivedAt,
		ProcessedAt:     domain.Now(),
	}, nil
}
