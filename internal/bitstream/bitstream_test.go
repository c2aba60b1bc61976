package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Take(t *testing.T) {
	t.Run("MSB first within a byte", func(t *testing.T) {
		r := NewReader([]byte{0b10110100})
		assert.Equal(t, uint64(0b101), r.Take(3))
		assert.Equal(t, uint64(0b10), r.Take(2))
		assert.Equal(t, uint64(0b100), r.Take(3))
	})

	t.Run("crosses byte boundaries", func(t *testing.T) {
		r := NewReader([]byte{0x5F, 0x2C, 0x40})
		assert.Equal(t, uint64(1), r.Take(2))
		assert.Equal(t, uint64(15), r.Take(5))
		// 11 bits spanning bytes 0, 1 and 2.
		assert.Equal(t, uint64(0b10010110001), r.Take(11))
	})

	t.Run("full 64-bit read", func(t *testing.T) {
		r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		assert.Equal(t, ^uint64(0), r.Take(64))
		assert.Equal(t, 0, r.Remaining())
	})

	t.Run("whole bytes", func(t *testing.T) {
		r := NewReader([]byte{65, 50})
		assert.Equal(t, uint64(65), r.Take(8))
		assert.Equal(t, uint64(50), r.Take(8))
	})
}

func TestReader_Underrun(t *testing.T) {
	t.Run("short read yields zero and advances", func(t *testing.T) {
		r := NewReader([]byte{0xFF})
		assert.Equal(t, uint64(0xFF), r.Take(8))
		assert.Equal(t, uint64(0), r.Take(4))
		assert.Equal(t, 12, r.Offset())
		assert.Equal(t, 0, r.Remaining())
	})

	t.Run("straddling the end yields zero even with bits left", func(t *testing.T) {
		r := NewReader([]byte{0xFF})
		r.Take(6)
		// Two set bits remain, but the request wants three.
		assert.Equal(t, uint64(0), r.Take(3))
	})

	t.Run("empty input", func(t *testing.T) {
		r := NewReader(nil)
		assert.Equal(t, uint64(0), r.Take(16))
		assert.Equal(t, 16, r.Offset())
	})
}

func TestReader_InvalidWidth(t *testing.T) {
	r := NewReader([]byte{0x00})
	assert.Panics(t, func() { r.Take(0) })
	assert.Panics(t, func() { r.Take(65) })
}

func TestWriter_Put(t *testing.T) {
	t.Run("packs MSB first with zero padding", func(t *testing.T) {
		var w Writer
		w.Put(0b101, 3)
		w.Put(0b1, 1)
		require.Equal(t, 4, w.Bits())
		assert.Equal(t, []byte{0b10110000}, w.Bytes())
	})

	t.Run("discards bits above width", func(t *testing.T) {
		var w Writer
		w.Put(0xFFF, 4)
		assert.Equal(t, []byte{0xF0}, w.Bytes())
	})

	t.Run("round trip through Reader", func(t *testing.T) {
		var w Writer
		values := []struct {
			v     uint64
			width int
		}{
			{1, 2}, {15, 5}, {1201, 11}, {0, 6}, {0, 6},
			{344, 9}, {9854, 14}, {0, 10}, {0, 9}, {0, 8}, {255, 8},
		}
		for _, e := range values {
			w.Put(e.v, e.width)
		}
		require.Equal(t, 88, w.Bits())

		r := NewReader(w.Bytes())
		for _, e := range values {
			assert.Equal(t, e.v, r.Take(e.width))
		}
	})
}
