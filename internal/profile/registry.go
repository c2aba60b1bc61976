package profile

import (
	"fmt"
	"strings"
)

// Registry resolves free-text profile identifiers, as stored in device
// metadata, to profiles. Lookups are case-insensitive and unknown or empty
// identifiers resolve to a default profile rather than failing: device
// metadata in the field is frequently stale or absent, and a best-effort
// decode of the dominant hardware beats dropping the uplink. Resolve
// reports when that fallback fired so the caller can log and count it.
//
// A Registry is populated during startup and read-only afterwards, which
// is what makes it safe to share across concurrent decode calls without
// locking.
type Registry struct {
	byAlias map[string]*Profile
	def     *Profile
}

// NewRegistry returns a registry holding the built-in profiles, with
// Barani as the default.
func NewRegistry() *Registry {
	r := &Registry{byAlias: make(map[string]*Profile)}
	for _, p := range []*Profile{Barani(), Simple()} {
		if err := r.Register(p); err != nil {
			// Built-ins are static; a collision here is a programming error.
			panic(err)
		}
	}
	r.def = r.byAlias["barani"]
	return r
}

// Register adds a profile under its id and aliases. It validates the
// profile and rejects keys that are already taken.
func (r *Registry) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	keys := append([]string{p.ID}, p.Aliases...)
	for _, key := range keys {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			return fmt.Errorf("profile %q has an empty alias", p.ID)
		}
		if existing, ok := r.byAlias[k]; ok {
			return fmt.Errorf("profile key %q already registered to %q", k, existing.ID)
		}
		r.byAlias[k] = p
	}
	return nil
}

// SetDefault changes which profile unknown identifiers resolve to.
func (r *Registry) SetDefault(id string) error {
	p, ok := r.byAlias[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return fmt.Errorf("unknown default profile %q", id)
	}
	r.def = p
	return nil
}

// Default returns the fallback profile.
func (r *Registry) Default() *Profile { return r.def }

// Resolve returns the profile registered under id, case-insensitively.
// Unknown or empty ids return the default profile with matched=false.
func (r *Registry) Resolve(id string) (p *Profile, matched bool) {
	if found, ok := r.byAlias[strings.ToLower(strings.TrimSpace(id))]; ok {
		return found, true
	}
	return r.def, false
}
