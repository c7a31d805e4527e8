package datalog

// Scheme is the ordered sequence of column names for a relation. Its length
// is the arity of the relation. Column names need not be unique during
// intermediate evaluation (projection and join may create or require
// duplicates temporarily), but a relation's canonical, declared scheme has
// distinct names.
type Scheme []string

// Clone returns an independent copy of the scheme.
func (s Scheme) Clone() Scheme {
	out := make(Scheme, len(s))
	copy(out, s)
	return out
}

// IndexOf returns the position of the first column named name, or -1 if no
// such column exists.
func (s Scheme) IndexOf(name string) int {
	for i, n := range s {
		if n == name {
			return i
		}
	}
	return -1
}

// Equal reports whether two schemes have the same length and the same names
// in the same order, the condition union and difference require.
func (s Scheme) Equal(other Scheme) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
