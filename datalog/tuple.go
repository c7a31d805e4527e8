package datalog

import "strings"

// Tuple is an ordered sequence of Values, positionally aligned with a
// Scheme: len(tuple) == len(scheme) always holds for a tuple stored in a
// Relation.
type Tuple []Value

// Equal reports componentwise equality.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Less gives the lexicographic order over tuple contents used for
// deterministic printing and iteration.
func (t Tuple) Less(other Tuple) bool {
	n := len(t)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if t[i] != other[i] {
			return t[i] < other[i]
		}
	}
	return len(t) < len(other)
}

// Key returns a string uniquely identifying the tuple's contents, used as a
// map key for deduplication.
func (t Tuple) Key() string {
	var b strings.Builder
	for _, v := range t {
		b.WriteString(string(v))
		b.WriteByte(0)
	}
	return b.String()
}

// Clone returns an independent copy of the tuple.
func (t Tuple) Clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// Format renders the tuple as "name=value, name=value, ..." pairing scheme
// names with values in scheme order, the line format Relation printing uses.
func (t Tuple) Format(scheme Scheme) string {
	var b strings.Builder
	for i, v := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(scheme) {
			b.WriteString(scheme[i])
		}
		b.WriteByte('=')
		b.WriteString(string(v))
	}
	return b.String()
}
