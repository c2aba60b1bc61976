// Command validate performs end-to-end integrity checks on an NDJSON
// uplink fixture: envelope well-formedness, full decode coverage against
// the configured profile, dependent-field ordering, and decode
// determinism. It exits non-zero when any phase fails, so it can gate CI
// on regenerated fixtures.
//
// Usage:
//
//	go run ./cmd/validate -in data/mock/uplinks.ndjson -profile barani
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lorasense/uplink-decoder/internal/decode"
	"github.com/lorasense/uplink-decoder/internal/domain"
	"github.com/lorasense/uplink-decoder/internal/observability"
	"github.com/lorasense/uplink-decoder/internal/profile"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	inPath := flag.String("in", "", "NDJSON uplink fixture to validate")
	profileID := flag.String("profile", "barani", "profile id the fixture was encoded with")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*inPath, *profileID); code != 0 {
		os.Exit(code)
	}
}

func run(inPath, profileID string) int {
	fmt.Println("=== Uplink Fixture Integrity Validation ===")
	fmt.Println()

	uplinks, err := loadFixture(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d uplinks from %s\n\n", len(uplinks), inPath)

	registry := profile.NewRegistry()
	prof, matched := registry.Resolve(profileID)
	if !matched {
		fmt.Fprintf(os.Stderr, "FATAL: unknown profile %q\n", profileID)
		return 1
	}
	decoder := decode.New(registry, slog.New(slog.DiscardHandler), observability.NewMetricsForTesting())

	phases := []*phase{
		checkEnvelopes(prof, uplinks),
		checkDecode(decoder, prof, uplinks),
		checkInvariants(decoder, prof, uplinks),
		checkDeterminism(decoder, prof, uplinks),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      %s\n", e)
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("all %d phases passed\n", len(phases))
	return 0
}

func loadFixture(path string) ([]domain.Uplink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var uplinks []domain.Uplink
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var up domain.Uplink
		if err := json.Unmarshal([]byte(line), &up); err != nil {
			return nil, fmt.Errorf("line %d: %w", len(uplinks)+1, err)
		}
		uplinks = append(uplinks, up)
	}
	return uplinks, sc.Err()
}

// checkEnvelopes verifies every uplink carries a device identifier and a
// payload long enough for the profile.
func checkEnvelopes(prof *profile.Profile, uplinks []domain.Uplink) *phase {
	p := &phase{name: "envelope integrity"}
	if len(uplinks) == 0 {
		p.errorf("fixture is empty")
		return p
	}
	for i, up := range uplinks {
		if up.EUI() == domain.FallbackEUI && up.DevEUI == "" {
			p.errorf("uplink %d: no device identifier", i)
		}
		payload, err := up.Payload()
		if err != nil {
			p.errorf("uplink %d: %v", i, err)
			continue
		}
		if len(payload) < prof.MinBytes() {
			p.errorf("uplink %d: %d-byte payload, profile %s needs %d",
				i, len(payload), prof.ID, prof.MinBytes())
		}
	}
	return p
}

// checkDecode verifies every uplink decodes into the profile's full field
// set, in declaration order.
func checkDecode(decoder *decode.Decoder, prof *profile.Profile, uplinks []domain.Uplink) *phase {
	p := &phase{name: "decode coverage"}

	want := make([]string, len(prof.Fields))
	for i, f := range prof.Fields {
		want[i] = f.Name
	}

	for i, up := range uplinks {
		payload, err := up.Payload()
		if err != nil {
			continue // reported by envelope phase
		}
		rec, err := decoder.Decode(payload, prof.ID)
		if err != nil {
			p.errorf("uplink %d: decode: %v", i, err)
			continue
		}
		got := rec.Fields()
		if len(got) != len(want) {
			p.errorf("uplink %d: %d fields, want %d", i, len(got), len(want))
			continue
		}
		for j := range want {
			if got[j] != want[j] {
				p.errorf("uplink %d: field %d is %q, want %q", i, j, got[j], want[j])
			}
		}
	}
	return p
}

// checkInvariants verifies the dependent-field orderings the encoding
// guarantees: minima never exceed their base, maxima never fall below it.
func checkInvariants(decoder *decode.Decoder, prof *profile.Profile, uplinks []domain.Uplink) *phase {
	p := &phase{name: "dependent-field invariants"}

	for i, up := range uplinks {
		payload, err := up.Payload()
		if err != nil {
			continue
		}
		rec, err := decoder.Decode(payload, prof.ID)
		if err != nil {
			continue
		}
		for _, f := range prof.Fields {
			if f.RelativeTo == "" {
				continue
			}
			v, _ := rec.Get(f.Name)
			base, _ := rec.Get(f.RelativeTo)
			switch f.Relation {
			case profile.Below:
				if v > base {
					p.errorf("uplink %d: %s=%g above %s=%g", i, f.Name, v, f.RelativeTo, base)
				}
			case profile.Above:
				if v < base {
					p.errorf("uplink %d: %s=%g below %s=%g", i, f.Name, v, f.RelativeTo, base)
				}
			}
		}
	}
	return p
}

// checkDeterminism re-decodes every payload and compares records.
func checkDeterminism(decoder *decode.Decoder, prof *profile.Profile, uplinks []domain.Uplink) *phase {
	p := &phase{name: "decode determinism"}

	for i, up := range uplinks {
		payload, err := up.Payload()
		if err != nil {
			continue
		}
		first, err := decoder.Decode(payload, prof.ID)
		if err != nil {
			continue
		}
		second, err := decoder.Decode(payload, prof.ID)
		if err != nil {
			p.errorf("uplink %d: re-decode: %v", i, err)
			continue
		}
		if !first.Equal(second) {
			p.errorf("uplink %d: re-decode produced a different record", i)
		}
	}
	return p
}
