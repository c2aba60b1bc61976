package profile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML profile definitions let operators ship layouts for new sensor
// hardware as data instead of a code change:
//
//	profiles:
//	  - id: lht65
//	    aliases: [dragino]
//	    strict: true
//	    fields:
//	      - name: Battery
//	        bits: 16
//	        scale: 0.001
//	        precision: 3
//	      - name: Temperature
//	        bits: 16
//	        scale: 0.01
//	        offset: -327.68
//	        precision: 2
//
// Omitted scale defaults to 1. relation is "above" or "below" and only
// meaningful together with relative_to.

type profileFile struct {
	Profiles []profileSpec `yaml:"profiles"`
}

type profileSpec struct {
	ID      string      `yaml:"id"`
	Aliases []string    `yaml:"aliases"`
	Strict  bool        `yaml:"strict"`
	Fields  []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name       string   `yaml:"name"`
	Bits       int      `yaml:"bits"`
	Scale      *float64 `yaml:"scale"`
	Offset     float64  `yaml:"offset"`
	Precision  int      `yaml:"precision"`
	RelativeTo string   `yaml:"relative_to"`
	Relation   string   `yaml:"relation"`
}

// LoadFile reads and validates profile definitions from a YAML file.
func LoadFile(path string) ([]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML profile definitions and validates each profile.
func Parse(data []byte) ([]*Profile, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profile file: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, errors.New("profile file defines no profiles")
	}

	profiles := make([]*Profile, 0, len(file.Profiles))
	for _, spec := range file.Profiles {
		p, err := spec.toProfile()
		if err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (s profileSpec) toProfile() (*Profile, error) {
	p := &Profile{
		ID:      s.ID,
		Aliases: s.Aliases,
		Strict:  s.Strict,
		Fields:  make([]Field, 0, len(s.Fields)),
	}
	for _, fs := range s.Fields {
		scale := 1.0
		if fs.Scale != nil {
			scale = *fs.Scale
		}
		relation := Above
		switch strings.ToLower(fs.Relation) {
		case "", "above":
		case "below":
			relation = Below
		default:
			return nil, fmt.Errorf("profile %q: field %q has unknown relation %q", s.ID, fs.Name, fs.Relation)
		}
		if fs.Relation != "" && fs.RelativeTo == "" {
			return nil, fmt.Errorf("profile %q: field %q sets relation without relative_to", s.ID, fs.Name)
		}
		p.Fields = append(p.Fields, Field{
			Name:       fs.Name,
			Bits:       fs.Bits,
			Scale:      scale,
			Offset:     fs.Offset,
			Precision:  fs.Precision,
			RelativeTo: fs.RelativeTo,
			Relation:   relation,
		})
	}
	return p, nil
}
