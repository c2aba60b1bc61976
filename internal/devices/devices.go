// Package devices maps device EUIs to the decoder profile configured for
// that hardware. The mapping is loaded once from a YAML file at startup
// and read-only afterwards; unknown devices get the default profile id so
// an unprovisioned station still produces data.
package devices

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Device is one provisioned sensor station.
type Device struct {
	EUI     string `yaml:"eui"`
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`
}

type deviceFile struct {
	Devices []Device `yaml:"devices"`
}

// Registry resolves device EUIs to profile ids.
type Registry struct {
	byEUI          map[string]Device
	defaultProfile string
}

// Empty returns a registry with no provisioned devices; every lookup
// yields the default profile id.
func Empty(defaultProfile string) *Registry {
	return &Registry{
		byEUI:          map[string]Device{},
		defaultProfile: defaultProfile,
	}
}

// Load reads a device file:
//
//	devices:
//	  - eui: A84041FFFE000001
//	    name: roof-station
//	    profile: barani
//	  - eui: A84041FFFE000002
//	    profile: simple
func Load(path, defaultProfile string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read devices file: %w", err)
	}
	return Parse(data, defaultProfile)
}

// Parse decodes and validates device definitions.
func Parse(data []byte, defaultProfile string) (*Registry, error) {
	var file deviceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse devices file: %w", err)
	}

	r := Empty(defaultProfile)
	for i, d := range file.Devices {
		eui := strings.TrimSpace(d.EUI)
		if eui == "" {
			return nil, fmt.Errorf("device %d has no eui", i)
		}
		if _, dup := r.byEUI[eui]; dup {
			return nil, fmt.Errorf("duplicate device eui %q", eui)
		}
		if d.Profile == "" {
			d.Profile = defaultProfile
		}
		d.EUI = eui
		r.byEUI[eui] = d
	}
	return r, nil
}

// ProfileFor returns the profile id configured for eui, and whether the
// device is provisioned. Unknown devices get the default profile id.
func (r *Registry) ProfileFor(eui string) (string, bool) {
	if d, ok := r.byEUI[strings.TrimSpace(eui)]; ok {
		return d.Profile, true
	}
	return r.defaultProfile, false
}

// Len reports the number of provisioned devices.
func (r *Registry) Len() int { return len(r.byEUI) }
