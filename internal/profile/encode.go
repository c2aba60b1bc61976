package profile

import (
	"fmt"
	"math"

	"github.com/lorasense/uplink-decoder/internal/bitstream"
)

// Encode packs physical values into a payload the profile decodes back,
// inverting each field's transform. Values outside a field's raw range are
// clamped rather than wrapped. Dependent fields read their base from the
// values map; every field name must be present. Encode exists for the mock
// uplink generator and round-trip tests. Production payloads only ever
// travel the other way.
func (p *Profile) Encode(values map[string]float64) ([]byte, error) {
	var w bitstream.Writer
	for _, f := range p.Fields {
		value, ok := values[f.Name]
		if !ok {
			return nil, fmt.Errorf("profile %q: no value for field %q", p.ID, f.Name)
		}
		base := 0.0
		if f.RelativeTo != "" {
			base, ok = values[f.RelativeTo]
			if !ok {
				return nil, fmt.Errorf("profile %q: no value for base field %q", p.ID, f.RelativeTo)
			}
		}
		w.Put(f.rawFor(value, base), f.Bits)
	}
	return w.Bytes(), nil
}

// rawFor computes the bitfield value whose decode lands closest to value,
// clamped to the field's raw range.
func (f Field) rawFor(value, base float64) uint64 {
	target := value
	switch {
	case f.RelativeTo != "" && f.Relation == Below:
		target = base - value
	case f.RelativeTo != "":
		target = value - base
	default:
		target -= f.Offset
	}

	raw := math.Round(target / f.Scale)
	maxRaw := float64(uint64(1)<<uint(f.Bits) - 1)
	if raw < 0 {
		return 0
	}
	if raw > maxRaw {
		return uint64(maxRaw)
	}
	return uint64(raw)
}
