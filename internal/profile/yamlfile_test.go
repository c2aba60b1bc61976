package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
profiles:
  - id: lht65
    aliases: [dragino]
    strict: true
    fields:
      - name: Battery
        bits: 16
        scale: 0.001
        precision: 3
      - name: Temperature
        bits: 16
        scale: 0.01
        offset: -327.68
        precision: 2
      - name: T_peak
        bits: 8
        scale: 0.01
        precision: 2
        relative_to: Temperature
        relation: above
`

func TestParse(t *testing.T) {
	t.Run("full definition", func(t *testing.T) {
		profiles, err := Parse([]byte(sampleYAML))
		require.NoError(t, err)
		require.Len(t, profiles, 1)

		p := profiles[0]
		assert.Equal(t, "lht65", p.ID)
		assert.Equal(t, []string{"dragino"}, p.Aliases)
		assert.True(t, p.Strict)
		require.Len(t, p.Fields, 3)
		assert.Equal(t, 0.001, p.Fields[0].Scale)
		assert.Equal(t, -327.68, p.Fields[1].Offset)
		assert.Equal(t, "Temperature", p.Fields[2].RelativeTo)
		assert.Equal(t, Above, p.Fields[2].Relation)
		assert.Equal(t, 40, p.BitLength())
	})

	t.Run("scale defaults to 1", func(t *testing.T) {
		profiles, err := Parse([]byte("profiles:\n  - id: p\n    fields:\n      - name: x\n        bits: 8\n"))
		require.NoError(t, err)
		assert.Equal(t, 1.0, profiles[0].Fields[0].Scale)
	})

	t.Run("unknown relation", func(t *testing.T) {
		_, err := Parse([]byte("profiles:\n  - id: p\n    fields:\n      - name: x\n        bits: 8\n      - name: y\n        bits: 8\n        relative_to: x\n        relation: sideways\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown relation")
	})

	t.Run("relation without relative_to", func(t *testing.T) {
		_, err := Parse([]byte("profiles:\n  - id: p\n    fields:\n      - name: x\n        bits: 8\n        relation: below\n"))
		require.Error(t, err)
	})

	t.Run("invalid field rejected by validation", func(t *testing.T) {
		_, err := Parse([]byte("profiles:\n  - id: p\n    fields:\n      - name: x\n        bits: 99\n"))
		require.Error(t, err)
	})

	t.Run("no profiles", func(t *testing.T) {
		_, err := Parse([]byte("profiles: []\n"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("profiles: ["))
		require.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

		profiles, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, profiles, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
