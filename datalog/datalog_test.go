package datalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemeEqual(t *testing.T) {
	require.True(t, Scheme{"X", "Y"}.Equal(Scheme{"X", "Y"}))
	require.False(t, Scheme{"X", "Y"}.Equal(Scheme{"Y", "X"}))
	require.False(t, Scheme{"X"}.Equal(Scheme{"X", "Y"}))
}

func TestSchemeIndexOf(t *testing.T) {
	s := Scheme{"X", "Y", "Z"}
	require.Equal(t, 1, s.IndexOf("Y"))
	require.Equal(t, -1, s.IndexOf("W"))
}

func TestTupleLessLexicographic(t *testing.T) {
	require.True(t, Tuple{"a", "b"}.Less(Tuple{"a", "c"}))
	require.False(t, Tuple{"b"}.Less(Tuple{"a", "z"}))
}

func TestTupleKeyDedup(t *testing.T) {
	require.Equal(t, Tuple{"a", "b"}.Key(), Tuple{"a", "b"}.Key())
	require.NotEqual(t, Tuple{"a", "b"}.Key(), Tuple{"ab"}.Key())
}

func TestTupleFormat(t *testing.T) {
	got := Tuple{"b", "c"}.Format(Scheme{"X", "Y"})
	require.Equal(t, "X=b, Y=c", got)
}

func TestPredicateString(t *testing.T) {
	p := Predicate{Name: "Edge", Params: []Param{Constant{Value: "a"}, Variable{Name: "Y"}}}
	require.Equal(t, "Edge(a,Y)", p.String())
}

func TestRuleString(t *testing.T) {
	r := Rule{
		Head: Predicate{Name: "Path", Params: []Param{Variable{Name: "X"}, Variable{Name: "Y"}}},
		Body: []Predicate{
			{Name: "Edge", Params: []Param{Variable{Name: "X"}, Variable{Name: "Z"}}},
			{Name: "Path", Params: []Param{Variable{Name: "Z"}, Variable{Name: "Y"}}},
		},
	}
	require.Equal(t, "Path(X,Y) :- Edge(X,Z),Path(Z,Y).", r.String())
}
