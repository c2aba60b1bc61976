package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()

	t.Run("aliases reach the same profile", func(t *testing.T) {
		v1, matched := reg.Resolve("v1")
		require.True(t, matched)
		barani, matched := reg.Resolve("barani")
		require.True(t, matched)
		assert.Same(t, v1, barani)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		p, matched := reg.Resolve("BARANI")
		require.True(t, matched)
		assert.Equal(t, "barani", p.ID)

		p, matched = reg.Resolve("  Simple ")
		require.True(t, matched)
		assert.Equal(t, "simple", p.ID)
	})

	t.Run("unknown id falls back to default", func(t *testing.T) {
		p, matched := reg.Resolve("nonexistent")
		assert.False(t, matched)
		assert.Same(t, reg.Default(), p)
		assert.Equal(t, "barani", p.ID)
	})

	t.Run("empty id falls back to default", func(t *testing.T) {
		p, matched := reg.Resolve("")
		assert.False(t, matched)
		assert.Equal(t, "barani", p.ID)
	})
}

func TestRegistry_Register(t *testing.T) {
	custom := func() *Profile {
		return &Profile{
			ID:      "custom",
			Aliases: []string{"c1"},
			Fields:  []Field{{Name: "x", Bits: 8, Scale: 1}},
		}
	}

	t.Run("registered profile resolves by id and alias", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(custom()))

		p, matched := reg.Resolve("Custom")
		require.True(t, matched)
		assert.Equal(t, "custom", p.ID)

		p, matched = reg.Resolve("c1")
		require.True(t, matched)
		assert.Equal(t, "custom", p.ID)
	})

	t.Run("rejects key collisions", func(t *testing.T) {
		reg := NewRegistry()
		p := custom()
		p.Aliases = []string{"v1"}
		err := reg.Register(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("rejects invalid profiles", func(t *testing.T) {
		reg := NewRegistry()
		p := custom()
		p.Fields[0].Bits = 0
		require.Error(t, reg.Register(p))
	})
}

func TestRegistry_SetDefault(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.SetDefault("simple"))

	p, matched := reg.Resolve("bogus")
	assert.False(t, matched)
	assert.Equal(t, "simple", p.ID)

	require.Error(t, reg.SetDefault("missing"))
}
