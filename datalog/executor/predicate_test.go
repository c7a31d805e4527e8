package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/stratadb/datalog"
)

func newDBWithEdge(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase([]datalog.Predicate{
		{Name: "Edge", Params: []datalog.Param{datalog.Variable{Name: "X"}, datalog.Variable{Name: "Y"}}},
	})
	require.NoError(t, err)
	for _, f := range []datalog.Predicate{
		{Name: "Edge", Params: []datalog.Param{datalog.Constant{Value: "a"}, datalog.Constant{Value: "b"}}},
		{Name: "Edge", Params: []datalog.Param{datalog.Constant{Value: "b"}, datalog.Constant{Value: "c"}}},
	} {
		require.NoError(t, db.AddFact(f))
	}
	return db
}

func TestEvaluatePredicateWithConstant(t *testing.T) {
	db := newDBWithEdge(t)
	p := datalog.Predicate{Name: "Edge", Params: []datalog.Param{datalog.Constant{Value: "a"}, datalog.Variable{Name: "Y"}}}
	rel, err := EvaluatePredicate(db, p)
	require.NoError(t, err)
	require.Equal(t, datalog.Scheme{"Y"}, rel.Scheme())
	require.Equal(t, 1, rel.Size())
	require.Equal(t, tup("b"), rel.Sorted()[0])
}

func TestEvaluatePredicateRepeatedVariable(t *testing.T) {
	db, err := NewDatabase([]datalog.Predicate{
		{Name: "eq", Params: []datalog.Param{datalog.Variable{Name: "X"}, datalog.Variable{Name: "Y"}}},
	})
	require.NoError(t, err)
	require.NoError(t, db.AddFact(datalog.Predicate{Name: "eq", Params: []datalog.Param{datalog.Constant{Value: "a"}, datalog.Constant{Value: "a"}}}))
	require.NoError(t, db.AddFact(datalog.Predicate{Name: "eq", Params: []datalog.Param{datalog.Constant{Value: "a"}, datalog.Constant{Value: "b"}}}))

	p := datalog.Predicate{Name: "eq", Params: []datalog.Param{datalog.Variable{Name: "X"}, datalog.Variable{Name: "X"}}}
	rel, err := EvaluatePredicate(db, p)
	require.NoError(t, err)
	require.Equal(t, datalog.Scheme{"X"}, rel.Scheme())
	require.Equal(t, 1, rel.Size())
}

func TestEvaluatePredicateUndeclaredRelation(t *testing.T) {
	db := newDBWithEdge(t)
	_, err := EvaluatePredicate(db, datalog.Predicate{Name: "Missing", Params: []datalog.Param{datalog.Variable{Name: "X"}}})
	require.Error(t, err)
}

func TestRunQueryNoMatch(t *testing.T) {
	db := newDBWithEdge(t)
	p := datalog.Predicate{Name: "Edge", Params: []datalog.Param{datalog.Constant{Value: "z"}, datalog.Variable{Name: "Y"}}}
	answer, err := RunQuery(db, p)
	require.NoError(t, err)
	require.Contains(t, answer, "No")
}

func TestRunQueryYesListsBindings(t *testing.T) {
	db := newDBWithEdge(t)
	p := datalog.Predicate{Name: "Edge", Params: []datalog.Param{datalog.Constant{Value: "a"}, datalog.Variable{Name: "Y"}}}
	answer, err := RunQuery(db, p)
	require.NoError(t, err)
	require.Contains(t, answer, "Yes(1)")
	require.Contains(t, answer, "Y=b")
}
