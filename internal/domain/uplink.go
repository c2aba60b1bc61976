package domain

import (
	"encoding/base64"
	"fmt"
	"time"
)

// FallbackEUI is assigned to uplinks that carry no device identifier at
// all. Early field installations sent anonymous uplinks from a single
// hard-wired station under this name, and stored data still references it.
const FallbackEUI = "Hardware_Sensor_01"

// Uplink is the raw envelope delivered by the LoRaWAN network bridge.
type Uplink struct {
	// Data is the base64-encoded binary sensor payload.
	Data string `json:"data"`

	// Device identifier fields. Different bridge generations populate
	// different ones; EUI picks the canonical value.
	DevEUI   string `json:"dev_eui,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
	SensorID string `json:"sensor_id,omitempty"`

	// ReceivedAt is the bridge-side reception timestamp, if provided.
	ReceivedAt time.Time `json:"received_at,omitzero"`
}

// EUI returns the device identifier, preferring dev_eui over device_id
// over sensor_id, falling back to FallbackEUI when all are empty.
func (u Uplink) EUI() string {
	switch {
	case u.DevEUI != "":
		return u.DevEUI
	case u.DeviceID != "":
		return u.DeviceID
	case u.SensorID != "":
		return u.SensorID
	default:
		return FallbackEUI
	}
}

// Payload decodes the base64 data field into raw bytes.
func (u Uplink) Payload() ([]byte, error) {
	if u.Data == "" {
		return nil, fmt.Errorf("uplink has no data field")
	}
	raw, err := base64.StdEncoding.DecodeString(u.Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return raw, nil
}

// DecodedUplink is the outgoing envelope: one flat measurement record plus
// the provenance needed downstream.
type DecodedUplink struct {
	DevEUI string `json:"dev_eui"`

	// Profile is the id of the sensor profile that actually decoded the
	// payload. ProfileFallback is set when the requested profile was
	// unknown and the default was substituted, so operators can spot
	// misconfigured device metadata.
	Profile         string `json:"profile"`
	ProfileFallback bool   `json:"profile_fallback,omitempty"`

	Values *Record `json:"values"`

	ReceivedAt  time.Time `json:"received_at,omitzero"`
	ProcessedAt time.Time `json:"processed_at"`
}
