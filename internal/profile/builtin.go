package profile

// Built-in profiles. The scale/offset constants come from the
// manufacturers' payload documents; changing any of them silently corrupts
// every decoded measurement, so they live here in one place and nowhere
// else.

// Barani is the MeteoHelix weather-station layout: 88 bits over 11 bytes.
// The registry also resolves it under the legacy alias "v1", which is what
// the device provisioning tools write by default.
func Barani() *Profile {
	return &Profile{
		ID:      "barani",
		Aliases: []string{"v1"},
		Fields: []Field{
			{Name: "Type", Bits: 2, Scale: 1},
			{Name: "Battery", Bits: 5, Scale: 0.05, Offset: 3, Precision: 2},
			{Name: "Temperature", Bits: 11, Scale: 0.1, Offset: -100, Precision: 1},
			{Name: "T_min", Bits: 6, Scale: 0.1, Precision: 1, RelativeTo: "Temperature", Relation: Below},
			{Name: "T_max", Bits: 6, Scale: 0.1, Precision: 1, RelativeTo: "Temperature", Relation: Above},
			{Name: "Humidity", Bits: 9, Scale: 0.2, Precision: 1},
			// Transmitted in 5 Pa steps above 50000 Pa; decoded in hPa.
			{Name: "Pressure", Bits: 14, Scale: 0.05, Offset: 500, Precision: 2},
			{Name: "Irradiation", Bits: 10, Scale: 2},
			{Name: "Irr_max", Bits: 9, Scale: 2, RelativeTo: "Irradiation", Relation: Above},
			{Name: "Rain", Bits: 8, Scale: 1, Precision: 1},
			{Name: "Rain_min_time", Bits: 8, Scale: 1, Precision: 1},
		},
	}
}

// Simple is the two-byte demo sensor: whole-degree temperature with a
// +40 °C transmission offset in byte 0, percent humidity in byte 1.
// Unlike Barani it rejects undersized payloads.
func Simple() *Profile {
	return &Profile{
		ID:     "simple",
		Strict: true,
		Fields: []Field{
			{Name: "Temperature", Bits: 8, Scale: 1, Offset: -40},
			{Name: "Humidity", Bits: 8, Scale: 1},
		},
	}
}
