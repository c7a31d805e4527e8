package planner

import (
	"github.com/wbrown/stratadb/datalog"
	"github.com/wbrown/stratadb/datalog/executor"
)

// PassEvent reports one rule's evaluation within one pass, for tracing.
type PassEvent struct {
	RuleIndices []int
	Pass        int
	RuleIndex   int
	Rule        datalog.Rule
	Added       int
}

// Options controls the fixpoint driver.
type Options struct {
	// Parallel, when true, evaluates the rules within a single component
	// concurrently via a worker pool instead of sequentially, before folding
	// every rule's derived tuples back into the database. Safe because
	// every rule reads the database as it stood before the pass and the
	// union back in is serialized per relation name.
	Parallel bool
	// Trace, when non-nil, receives one PassEvent per rule evaluation.
	Trace func(PassEvent)
}

// SCCResult summarizes one component's evaluation: which rules it held, in
// rule-index order, whether it needed iteration to a fixed point, and how
// many passes that took.
type SCCResult struct {
	RuleIndices []int
	Recursive   bool
	Passes      int
}

// Run evaluates every rule to a least fixed point: rules are grouped into
// strongly connected components of the rule-dependency graph and processed
// in dependency order (a component's rules are not evaluated again once the
// next component has started, though a later component's rules may still add
// tuples to the same head relation); within a component, rules are
// evaluated repeatedly in ascending rule-index order, each pass folding
// newly derived tuples into the database, until a full pass adds nothing
// new. Returns one SCCResult per component, in evaluation order.
func Run(db *executor.Database, rules []datalog.Rule, opts Options) ([]SCCResult, error) {
	g := BuildGraph(rules)
	var results []SCCResult
	for _, comp := range g.SCCs() {
		sortInts(comp)
		passes, err := evalComponent(db, rules, comp, g, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, SCCResult{
			RuleIndices: comp,
			Recursive:   g.IsRecursive(comp),
			Passes:      passes,
		})
	}
	return results, nil
}

// evalComponent repeatedly evaluates every rule in one component, in
// ascending rule-index order, until a full pass derives no new tuple in any
// of the component's head relations. Returns the number of passes taken. A
// non-recursive single-rule component needs no fixed-point check at all: one
// evaluation already reaches it, so it runs once and returns without a
// second, redundant comparison pass.
func evalComponent(db *executor.Database, rules []datalog.Rule, comp []int, g *Graph, opts Options) (int, error) {
	if len(comp) == 1 && !g.IsRecursive(comp) {
		idx := comp[0]
		derived, err := evaluateRule(db, rules[idx])
		if err != nil {
			return 0, err
		}
		added, err := db.Union(rules[idx].Head.Name, derived)
		if err != nil {
			return 0, err
		}
		if opts.Trace != nil {
			opts.Trace(PassEvent{RuleIndices: comp, Pass: 1, RuleIndex: idx, Rule: rules[idx], Added: added.Size()})
		}
		return 1, nil
	}

	passes := 0
	for {
		passes++
		changed := false

		if opts.Parallel && len(comp) > 1 {
			derived, err := evalRulesParallel(db, rules, comp)
			if err != nil {
				return 0, err
			}
			for i, idx := range comp {
				added, err := db.Union(rules[idx].Head.Name, derived[i])
				if err != nil {
					return 0, err
				}
				if added.Size() > 0 {
					changed = true
				}
				if opts.Trace != nil {
					opts.Trace(PassEvent{RuleIndices: comp, Pass: passes, RuleIndex: idx, Rule: rules[idx], Added: added.Size()})
				}
			}
		} else {
			for _, idx := range comp {
				derived, err := evaluateRule(db, rules[idx])
				if err != nil {
					return 0, err
				}
				added, err := db.Union(rules[idx].Head.Name, derived)
				if err != nil {
					return 0, err
				}
				if added.Size() > 0 {
					changed = true
				}
				if opts.Trace != nil {
					opts.Trace(PassEvent{RuleIndices: comp, Pass: passes, RuleIndex: idx, Rule: rules[idx], Added: added.Size()})
				}
			}
		}

		if !changed {
			return passes, nil
		}
	}
}

// evaluateRule computes one rule's derived tuples: evaluate every body
// predicate, natural-join the results left to right, project onto the
// head's parameter variables in head order, and rename to the head
// relation's declared scheme.
func evaluateRule(db *executor.Database, r datalog.Rule) (*executor.Relation, error) {
	acc, err := executor.EvaluatePredicate(db, r.Body[0])
	if err != nil {
		return nil, err
	}
	for _, b := range r.Body[1:] {
		next, err := executor.EvaluatePredicate(db, b)
		if err != nil {
			return nil, err
		}
		acc = acc.NaturalJoin(next)
	}

	headRel, err := db.Get(r.Head.Name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.Head.Params))
	for i, p := range r.Head.Params {
		v, ok := p.(datalog.Variable)
		if !ok {
			return nil, &datalog.ArityMismatchError{Name: r.Head.Name, Expected: len(r.Head.Params), Got: len(r.Head.Params)}
		}
		names[i] = v.Name
	}

	projected, err := acc.ProjectNames(names)
	if err != nil {
		return nil, err
	}
	return projected.Rename(headRel.Scheme()).WithName(r.Head.Name), nil
}

// evalRulesParallel evaluates every rule in comp's body (read-only against
// db as it stood at the start of the pass) concurrently via a worker pool;
// results are returned in the same order as comp for the caller to union
// back in sequentially.
func evalRulesParallel(db *executor.Database, rules []datalog.Rule, comp []int) ([]*executor.Relation, error) {
	return ExecuteParallel(0, comp, func(idx int) (*executor.Relation, error) {
		return evaluateRule(db, rules[idx])
	})
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
