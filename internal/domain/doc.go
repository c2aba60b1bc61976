// Package domain models LoRaWAN uplink envelopes and the measurement
// records decoded from them.
//
// # Data Source
//
// Field weather stations transmit a compact binary payload over a
// low-power wide-area radio link. The network bridge delivers each uplink
// as a small JSON envelope whose "data" field carries the payload as
// base64. The device identifier may arrive under "dev_eui", "device_id"
// or "sensor_id" depending on the bridge generation; [Uplink.EUI] applies
// the legacy priority order.
//
// # Payload Conventions
//
// Payloads are bit-packed MSB-first with no alignment: a field may start
// and end in the middle of a byte. Most fields decode through an affine
// transform (value = raw*scale + offset) with a fixed decimal precision;
// a few are expressed relative to an earlier field in the same payload
// (the minimum temperature is transmitted as tenths of a degree below the
// current temperature, the maximum as tenths above, and the irradiation
// peak as W/m² above the current irradiation).
//
// The primary station layout occupies exactly 88 bits (11 bytes):
//
//	Type           2 bits   message type, raw integer
//	Battery        5 bits   raw*0.05 + 3 V
//	Temperature   11 bits   raw*0.1 - 100 °C
//	T_min          6 bits   Temperature - raw*0.1 °C
//	T_max          6 bits   Temperature + raw*0.1 °C
//	Humidity       9 bits   raw*0.2 %RH
//	Pressure      14 bits   raw*0.05 + 500 hPa
//	Irradiation   10 bits   raw*2 W/m²
//	Irr_max        9 bits   Irradiation + raw*2 W/m²
//	Rain           8 bits   tipping-bucket count
//	Rain_min_time  8 bits   minutes since the last tip
//
// # Error Policy
//
// Decoded field names are a stable contract: downstream consumers key
// storage columns and API responses off them, so renaming one is a
// breaking change. The primary layout never rejects a payload: a
// truncated transmission decodes to zero-valued trailing fields, and the
// caller decides whether an all-zero record is suspicious. Profiles with
// a strict minimum length (the two-byte demo sensor) instead fail the
// whole uplink.
package domain
