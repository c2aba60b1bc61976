// Package profile defines the declarative wire formats of supported
// sensor hardware: ordered bitfield layouts with affine decode transforms,
// a case-insensitive registry for selecting them, and optional loading of
// additional layouts from YAML.
package profile

import (
	"math"

	"github.com/lorasense/uplink-decoder/internal/domain"
)

// Relation says how a dependent field combines with its base field.
type Relation int

const (
	// Above adds the scaled raw value to the base field's decoded value.
	Above Relation = iota
	// Below subtracts the scaled raw value from the base field's decoded value.
	Below
)

// Field describes one bitfield of a sensor payload and how its raw
// unsigned integer becomes a physical value. For independent fields the
// value is raw*Scale + Offset. For dependent fields (RelativeTo set) the
// value is base ± raw*Scale, where base is the already-decoded value of
// the referenced field. Fields are immutable once a profile is built.
type Field struct {
	Name  string
	Bits  int
	Scale float64
	// Offset is the fixed additive term; ignored for dependent fields.
	Offset float64
	// Precision is the number of decimal digits the value is rounded to.
	// Zero disables rounding (raw counts, identity fields).
	Precision int
	// RelativeTo names the earlier field this one is expressed against.
	RelativeTo string
	Relation   Relation
}

// Apply converts a raw bitfield value into the field's physical value,
// resolving dependent fields against the values decoded so far.
func (f Field) Apply(raw uint64, decoded *domain.Record) float64 {
	v := float64(raw) * f.Scale
	if f.RelativeTo != "" {
		base, _ := decoded.Get(f.RelativeTo)
		if f.Relation == Below {
			v = base - v
		} else {
			v = base + v
		}
	} else {
		v += f.Offset
	}
	if f.Precision > 0 {
		v = roundTo(v, f.Precision)
	}
	return v
}

// roundTo rounds half away from zero at the given decimal precision via
// the scale-round-unscale idiom. Downstream consumers compare decoded
// output against decimal literals, so this exact sequence of float
// operations is load-bearing: raw*0.1-100 accumulates representation
// noise that only math.Round(v*10)/10 cancels back to the literal.
func roundTo(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
