package executor

import "github.com/wbrown/stratadb/datalog"

// EvaluatePredicate turns a single predicate reference into a relation of
// variable bindings: select_const for every Constant argument, select_eq for
// every variable repeated within the predicate, then a project onto each
// distinct variable's first occurrence, renamed to that variable's name.
// The result's scheme is the predicate's distinct variables in order of
// first appearance; a predicate with no variables yields a nullary relation
// whose size (0 or 1) records whether it is satisfied at all.
func EvaluatePredicate(db *Database, p datalog.Predicate) (*Relation, error) {
	rel, err := db.Get(p.Name)
	if err != nil {
		return nil, err
	}
	if p.Arity() != len(rel.Scheme()) {
		return nil, &datalog.ArityMismatchError{Name: p.Name, Expected: len(rel.Scheme()), Got: p.Arity()}
	}

	for i, param := range p.Params {
		if c, ok := param.(datalog.Constant); ok {
			rel = rel.SelectConst(i, c.Value)
		}
	}

	groups := make(map[string][]int)
	var order []string
	for i, param := range p.Params {
		v, ok := param.(datalog.Variable)
		if !ok {
			continue
		}
		if _, seen := groups[v.Name]; !seen {
			order = append(order, v.Name)
		}
		groups[v.Name] = append(groups[v.Name], i)
	}

	for _, name := range order {
		if idxs := groups[name]; len(idxs) > 1 {
			rel = rel.SelectEq(idxs)
		}
	}

	indices := make([]int, len(order))
	names := make([]string, len(order))
	for i, name := range order {
		indices[i] = groups[name][0]
		names[i] = name
	}

	if len(order) == 0 {
		nullary := New(rel.Name(), datalog.Scheme{})
		if rel.Size() > 0 {
			nullary.Add(datalog.Tuple{})
		}
		return nullary, nil
	}

	projected := rel.Project(indices)
	return projected.Rename(names), nil
}
