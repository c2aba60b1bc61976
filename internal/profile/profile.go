package profile

import (
	"fmt"

	"github.com/lorasense/uplink-decoder/internal/bitstream"
)

// Profile is one sensor hardware type's complete wire format: an ordered
// list of bitfields that together consume the payload. Profiles are built
// once at startup and shared read-only across concurrent decode calls.
type Profile struct {
	// ID is the canonical identifier; Aliases are additional lookup keys.
	// Both are matched case-insensitively by the Registry.
	ID      string
	Aliases []string

	// Strict profiles require the payload to carry at least BitLength
	// bits and reject shorter ones outright. Non-strict profiles decode
	// truncated payloads to zero-valued trailing fields instead.
	Strict bool

	Fields []Field
}

// BitLength is the number of payload bits the profile consumes.
func (p *Profile) BitLength() int {
	total := 0
	for _, f := range p.Fields {
		total += f.Bits
	}
	return total
}

// MinBytes is the smallest payload, in whole bytes, that covers BitLength.
func (p *Profile) MinBytes() int {
	return (p.BitLength() + 7) / 8
}

// Validate checks the profile's internal consistency: a non-empty id,
// at least one field, bit widths within the reader's range, unique field
// names, and dependent fields referencing earlier fields only.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile has no id")
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("profile %q has no fields", p.ID)
	}
	seen := make(map[string]bool, len(p.Fields))
	for i, f := range p.Fields {
		if f.Name == "" {
			return fmt.Errorf("profile %q: field %d has no name", p.ID, i)
		}
		if f.Bits < 1 || f.Bits > bitstream.MaxWidth {
			return fmt.Errorf("profile %q: field %q has invalid bit width %d", p.ID, f.Name, f.Bits)
		}
		if f.Scale == 0 {
			return fmt.Errorf("profile %q: field %q has zero scale", p.ID, f.Name)
		}
		if f.Precision < 0 {
			return fmt.Errorf("profile %q: field %q has negative precision", p.ID, f.Name)
		}
		if f.RelativeTo != "" && !seen[f.RelativeTo] {
			return fmt.Errorf("profile %q: field %q references %q, which is not an earlier field", p.ID, f.Name, f.RelativeTo)
		}
		if seen[f.Name] {
			return fmt.Errorf("profile %q: duplicate field name %q", p.ID, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
