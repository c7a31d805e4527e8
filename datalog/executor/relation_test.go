package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/stratadb/datalog"
)

func tup(vals ...string) datalog.Tuple {
	t := make(datalog.Tuple, len(vals))
	for i, v := range vals {
		t[i] = datalog.Value(v)
	}
	return t
}

func edgeRelation() *Relation {
	r := New("Edge", datalog.Scheme{"X", "Y"})
	r.Add(tup("a", "b"))
	r.Add(tup("b", "c"))
	r.Add(tup("c", "d"))
	return r
}

func TestSelectConst(t *testing.T) {
	r := edgeRelation()
	out := r.SelectConst(0, "a")
	require.Equal(t, 1, out.Size())
	require.Equal(t, "Edge", out.Name())
}

func TestSelectConstOutOfRangePanics(t *testing.T) {
	r := edgeRelation()
	require.Panics(t, func() { r.SelectConst(5, "a") })
}

func TestSelectEqKeepsEqualColumns(t *testing.T) {
	r := New("eq", datalog.Scheme{"X", "Y"})
	r.Add(tup("a", "a"))
	r.Add(tup("a", "b"))
	out := r.SelectEq([]int{0, 1})
	require.Equal(t, 1, out.Size())
	require.Equal(t, tup("a", "a"), out.Sorted()[0])
}

func TestProjectByIndex(t *testing.T) {
	r := edgeRelation()
	out := r.Project([]int{1, 0})
	require.Equal(t, datalog.Scheme{"Y", "X"}, out.Scheme())
	require.Equal(t, 3, out.Size())
}

func TestProjectNamesMissingColumn(t *testing.T) {
	r := edgeRelation()
	_, err := r.ProjectNames([]string{"Z"})
	require.Error(t, err)
}

func TestRenameRequiresMatchingArity(t *testing.T) {
	r := edgeRelation()
	require.Panics(t, func() { r.Rename([]string{"only-one"}) })
}

func TestUnionRequiresIdenticalScheme(t *testing.T) {
	a := New("A", datalog.Scheme{"X", "Y"})
	b := New("A", datalog.Scheme{"X"})
	_, err := a.Union(b)
	require.Error(t, err)
}

func TestUnionIsIdempotent(t *testing.T) {
	r := edgeRelation()
	out, err := r.Union(r)
	require.NoError(t, err)
	require.Equal(t, r.Size(), out.Size())
}

func TestUnionIsCommutative(t *testing.T) {
	a := New("R", datalog.Scheme{"X"})
	a.Add(tup("1"))
	b := New("R", datalog.Scheme{"X"})
	b.Add(tup("2"))

	ab, err := a.Union(b)
	require.NoError(t, err)
	ba, err := b.Union(a)
	require.NoError(t, err)
	require.ElementsMatch(t, ab.Sorted(), ba.Sorted())
}

func TestDifference(t *testing.T) {
	a := New("R", datalog.Scheme{"X"})
	a.Add(tup("1"))
	a.Add(tup("2"))
	b := New("R", datalog.Scheme{"X"})
	b.Add(tup("2"))

	diff, err := a.Difference(b)
	require.NoError(t, err)
	require.Equal(t, 1, diff.Size())
	require.Equal(t, tup("1"), diff.Sorted()[0])
}

func TestNaturalJoinCombinesOnSharedName(t *testing.T) {
	edge := edgeRelation()
	path := New("Path", datalog.Scheme{"X", "Y"})
	path.Add(tup("b", "z"))

	joined := edge.NaturalJoin(path.Rename([]string{"Y", "Z"}))
	require.Equal(t, datalog.Scheme{"X", "Y", "Z"}, joined.Scheme())
	require.Equal(t, 1, joined.Size())
	require.Equal(t, tup("a", "b", "z"), joined.Sorted()[0])
}

func TestNaturalJoinSelfYieldsSameRelation(t *testing.T) {
	r := edgeRelation()
	out := r.NaturalJoin(r)
	require.ElementsMatch(t, r.Sorted(), out.Sorted())
}

func TestPrintFormatIsSortedAndLabeled(t *testing.T) {
	r := edgeRelation()
	want := "  X=a, Y=b\n  X=b, Y=c\n  X=c, Y=d"
	require.Equal(t, want, r.String())
}
