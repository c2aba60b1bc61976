// Package bitstream reads and writes unsigned integers of arbitrary bit
// width, packed MSB-first across byte boundaries with no padding or
// alignment. This is the transmission order used by the compact sensor
// payloads decoded by this service: bit 0 of the stream is the most
// significant bit of byte 0.
package bitstream

import "fmt"

// MaxWidth is the widest single extraction supported by Reader and Writer.
const MaxWidth = 64

// Reader extracts successive N-bit unsigned integers from a byte slice.
// The cursor only advances; a Reader is created per decode pass and holds
// the only mutable state of that pass. It borrows the backing slice and
// never modifies it. A Reader is not safe for concurrent use; use one per
// goroutine.
type Reader struct {
	data []byte
	pos  int // bit offset from the start of data
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Take returns the unsigned integer formed by the next width bits and
// advances the cursor by width. If fewer than width bits remain, Take
// returns 0 and still advances the cursor past the end, so subsequent
// reads also come up empty; truncated radio payloads decode to zero-valued
// trailing fields instead of failing.
//
// width must be between 1 and MaxWidth; field widths are validated when a
// profile is constructed, so a violation here is a programming error and
// panics.
func (r *Reader) Take(width int) uint64 {
	if width < 1 || width > MaxWidth {
		panic(fmt.Sprintf("bitstream: invalid bit width %d", width))
	}
	if r.pos+width > len(r.data)*8 {
		r.pos += width
		return 0
	}
	var v uint64
	for i := 0; i < width; i++ {
		bit := r.data[r.pos>>3] >> (7 - uint(r.pos&7)) & 1
		v = v<<1 | uint64(bit)
		r.pos++
	}
	return v
}

// Remaining reports how many unread bits are left, or 0 if the cursor has
// run past the end.
func (r *Reader) Remaining() int {
	if n := len(r.data)*8 - r.pos; n > 0 {
		return n
	}
	return 0
}

// Offset reports the current cursor position in bits.
func (r *Reader) Offset() int { return r.pos }

// Len reports the total number of bits in the backing slice.
func (r *Reader) Len() int { return len(r.data) * 8 }

// Writer packs successive N-bit unsigned integers MSB-first, the exact
// inverse of Reader. It is used to synthesize sensor payloads for mock
// uplinks and round-trip tests.
type Writer struct {
	buf  []byte
	free int // unwritten bits in the last byte of buf
}

// Put appends the width low-order bits of value, most significant first.
// Bits of value above width are discarded. width must be between 1 and
// MaxWidth.
func (w *Writer) Put(value uint64, width int) {
	if width < 1 || width > MaxWidth {
		panic(fmt.Sprintf("bitstream: invalid bit width %d", width))
	}
	for i := width - 1; i >= 0; i-- {
		if w.free == 0 {
			w.buf = append(w.buf, 0)
			w.free = 8
		}
		w.free--
		w.buf[len(w.buf)-1] |= byte(value>>uint(i)&1) << uint(w.free)
	}
}

// Bits reports the number of bits written so far.
func (w *Writer) Bits() int { return len(w.buf)*8 - w.free }

// Bytes returns the packed payload. The final partial byte, if any, is
// zero-padded in its low-order bits.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}
