package planner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wbrown/stratadb/datalog"
	"github.com/wbrown/stratadb/datalog/executor"
)

func constant(v string) datalog.Param { return datalog.Constant{Value: datalog.Value(v)} }

func newTransitiveClosureDB(t *testing.T) *executor.Database {
	t.Helper()
	db, err := executor.NewDatabase([]datalog.Predicate{
		pred("Edge", "X", "Y"),
		pred("Path", "X", "Y"),
	})
	require.NoError(t, err)
	facts := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}
	for _, f := range facts {
		require.NoError(t, db.AddFact(datalog.Predicate{Name: "Edge", Params: []datalog.Param{constant(f[0]), constant(f[1])}}))
	}
	return db
}

func TestRunTransitiveClosure(t *testing.T) {
	db := newTransitiveClosureDB(t)
	rules := transitiveClosureRules()

	results, err := Run(db, rules, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	path, err := db.Get("Path")
	require.NoError(t, err)
	require.Equal(t, 6, path.Size())

	answer, err := executor.RunQuery(db, datalog.Predicate{
		Name:   "Path",
		Params: []datalog.Param{constant("a"), datalog.Variable{Name: "Y"}},
	})
	require.NoError(t, err)
	require.Contains(t, answer, "Yes(3)")
}

func TestRunIsMonotonicAcrossPasses(t *testing.T) {
	db := newTransitiveClosureDB(t)
	sizes := []int{}
	_, err := Run(db, transitiveClosureRules(), Options{
		Trace: func(ev PassEvent) {
			rel, gerr := db.Get(ev.Rule.Head.Name)
			require.NoError(t, gerr)
			sizes = append(sizes, rel.Size())
		},
	})
	require.NoError(t, err)
	for i := 1; i < len(sizes); i++ {
		require.GreaterOrEqual(t, sizes[i], sizes[i-1])
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	seqDB := newTransitiveClosureDB(t)
	_, err := Run(seqDB, transitiveClosureRules(), Options{})
	require.NoError(t, err)
	seqPath, err := seqDB.Get("Path")
	require.NoError(t, err)

	parDB := newTransitiveClosureDB(t)
	_, err = Run(parDB, transitiveClosureRules(), Options{Parallel: true})
	require.NoError(t, err)
	parPath, err := parDB.Get("Path")
	require.NoError(t, err)

	require.ElementsMatch(t, seqPath.Sorted(), parPath.Sorted())
}

func TestNonRecursiveSCCTakesOnePass(t *testing.T) {
	db := newTransitiveClosureDB(t)
	results, err := Run(db, transitiveClosureRules(), Options{})
	require.NoError(t, err)

	for _, res := range results {
		if !res.Recursive {
			require.Equal(t, 1, res.Passes)
		}
	}
}

func TestNoMatchQueryReturnsNo(t *testing.T) {
	db := newTransitiveClosureDB(t)
	_, err := Run(db, transitiveClosureRules(), Options{})
	require.NoError(t, err)

	answer, err := executor.RunQuery(db, datalog.Predicate{
		Name:   "Path",
		Params: []datalog.Param{constant("z"), datalog.Variable{Name: "Y"}},
	})
	require.NoError(t, err)
	require.Equal(t, `Path(z,Y)? No`, answer)
}
