package domain

import (
	"bytes"
	"strconv"
)

// Record is an insertion-ordered mapping from field name to decoded value.
// Order follows the sensor profile's field order, which downstream
// consumers rely on when rendering or exporting records. A Record is
// built up during a single decode call and owned by the caller afterwards.
type Record struct {
	names  []string
	values map[string]float64
}

// NewRecord returns an empty Record sized for n fields.
func NewRecord(n int) *Record {
	return &Record{
		names:  make([]string, 0, n),
		values: make(map[string]float64, n),
	}
}

// Set stores value under name. Setting an existing name overwrites the
// value but keeps its original position.
func (r *Record) Set(name string, value float64) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len reports the number of fields.
func (r *Record) Len() int { return len(r.names) }

// Equal reports whether two records hold the same fields in the same
// order with identical values.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.names) != len(other.names) {
		return false
	}
	for i, name := range r.names {
		if other.names[i] != name || other.values[name] != r.values[name] {
			return false
		}
	}
	return true
}

// MarshalJSON renders the record as a JSON object with keys in insertion
// order. encoding/json's map marshalling sorts keys alphabetically, which
// would scramble the profile's field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(strconv.AppendQuote(nil, name))
		buf.WriteByte(':')
		buf.Write(strconv.AppendFloat(nil, r.values[name], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
